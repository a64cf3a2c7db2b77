package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CollectionConversations = "conversations"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role      Role      `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Language  string    `json:"language"`
}

type Conversation struct {
	ConversationID string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"index;size:36" json:"user_id"`
	Messages       []Turn    `gorm:"serializer:json" json:"messages"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (c *Conversation) BeforeCreate(*gorm.DB) error {
	if c.ConversationID == "" {
		c.ConversationID = uuid.NewString()
	}
	return nil
}
