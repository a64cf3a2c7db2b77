package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CollectionUsers = "users"

type User struct {
	UserID       string    `gorm:"primaryKey;size:36" json:"user_id"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Location     string    `json:"location"`
	FarmSize     string    `json:"farm_size"` // small|medium|large
	Language     string    `json:"language"`  // kannada|hindi|english|tamil|telugu
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

var FarmSizes = []string{"small", "medium", "large"}

// Language is one of the assistant's supported languages.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var Languages = []Language{
	{Code: "kannada", Name: "ಕನ್ನಡ"},
	{Code: "hindi", Name: "हिन्दी"},
	{Code: "english", Name: "English"},
	{Code: "tamil", Name: "தமிழ்"},
	{Code: "telugu", Name: "తెలుగు"},
}

const DefaultLanguage = "kannada"

func IsLanguage(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}
