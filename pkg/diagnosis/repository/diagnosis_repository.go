package repository

import (
	"context"

	"kisan/entities"
)

type DiagnosisRepository interface {
	Create(ctx context.Context, d *entities.CropDiagnosis) error
	// ListByUser returns the user's diagnoses newest first; limit <= 0 means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]entities.CropDiagnosis, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
