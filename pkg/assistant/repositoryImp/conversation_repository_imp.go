package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/assistant/repository"
)

type conversationRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ConversationRepository { return &conversationRepo{db} }

func (r *conversationRepo) Create(ctx context.Context, c *entities.Conversation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *conversationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]entities.Conversation, error) {
	out := []entities.Conversation{}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, rowid DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *conversationRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Conversation{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
