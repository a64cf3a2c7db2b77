package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CollectionDiagnoses = "cropDiagnoses"

type CropDiagnosis struct {
	DiagnosisID     string    `gorm:"primaryKey;size:36" json:"id"`
	UserID          string    `gorm:"index;size:36" json:"user_id"`
	ImageURL        string    `json:"image_url"`
	Disease         string    `json:"disease"`
	Confidence      int       `json:"confidence"` // percent
	Severity        string    `json:"severity"`
	Treatment       []string  `gorm:"serializer:json" json:"treatment"`
	Prevention      []string  `gorm:"serializer:json" json:"prevention"`
	LocalTreatments []string  `gorm:"serializer:json" json:"local_treatments"`
	Timestamp       time.Time `gorm:"index" json:"timestamp"`
}

func (CropDiagnosis) TableName() string { return "crop_diagnoses" }

func (d *CropDiagnosis) BeforeCreate(*gorm.DB) error {
	if d.DiagnosisID == "" {
		d.DiagnosisID = uuid.NewString()
	}
	return nil
}
