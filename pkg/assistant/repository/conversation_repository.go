package repository

import (
	"context"

	"kisan/entities"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *entities.Conversation) error
	// ListByUser returns the user's conversations newest first; limit <= 0
	// means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]entities.Conversation, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
