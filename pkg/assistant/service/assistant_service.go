package service

import (
	"context"
	"time"

	"kisan/entities"
)

type Sample struct {
	Question string `json:"question"`
	Category string `json:"category"`
}

// Utterance is what the recognizer heard.
type Utterance struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Speech describes the simulated playback of an answer.
type Speech struct {
	DurationMS int64     `json:"duration_ms"`
	Until      time.Time `json:"speaking_until"`
}

type AskInput struct {
	Language string `json:"language"`
	Text     string `json:"text"`
	// Save appends the exchange to the user's conversations.
	Save bool `json:"save"`
}

type Exchange struct {
	Question       entities.Turn `json:"question"`
	Answer         entities.Turn `json:"answer"`
	Speech         Speech        `json:"speech"`
	ConversationID string        `json:"conversation_id,omitempty"`
}

type AssistantService interface {
	Languages() []entities.Language
	Samples(language string) []Sample
	Listen(ctx context.Context, language string, audio []byte) (*Utterance, error)
	Ask(ctx context.Context, userID string, in AskInput) (*Exchange, error)
	AddConversation(ctx context.Context, userID string, turns []entities.Turn) (*entities.Conversation, error)
	ListConversations(ctx context.Context, userID string, limit int) ([]entities.Conversation, error)
	CountConversations(ctx context.Context, userID string) (int64, error)
}
