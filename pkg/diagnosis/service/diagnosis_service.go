package service

import (
	"context"

	"kisan/entities"
)

// Finding is what a classifier reports for one photo.
type Finding struct {
	Disease         string
	Confidence      int
	Severity        string
	Treatment       []string
	Prevention      []string
	LocalTreatments []string
}

type Classifier interface {
	Classify(ctx context.Context, image []byte) (Finding, error)
}

// Analysis is returned even when the record could not be saved.
type Analysis struct {
	Diagnosis *entities.CropDiagnosis `json:"diagnosis"`
	Saved     bool                    `json:"saved"`
	Message   string                  `json:"message"`
}

type DiagnosisService interface {
	Analyze(ctx context.Context, userID string, image []byte) (*Analysis, error)
	// Add appends d to the user's history with a fresh id and server time.
	Add(ctx context.Context, userID string, d *entities.CropDiagnosis) error
	List(ctx context.Context, userID string, limit int) ([]entities.CropDiagnosis, error)
	Count(ctx context.Context, userID string) (int64, error)
}
