package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/diagnosis/repository"
)

type diagnosisRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DiagnosisRepository { return &diagnosisRepo{db} }

func (r *diagnosisRepo) Create(ctx context.Context, d *entities.CropDiagnosis) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *diagnosisRepo) ListByUser(ctx context.Context, userID string, limit int) ([]entities.CropDiagnosis, error) {
	out := []entities.CropDiagnosis{}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("timestamp DESC, rowid DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *diagnosisRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.CropDiagnosis{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
