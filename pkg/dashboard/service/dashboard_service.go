package service

import (
	"context"
	"time"
)

type DiagnosisSummary struct {
	ID         string    `json:"id"`
	Disease    string    `json:"disease"`
	Severity   string    `json:"severity"`
	Confidence int       `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

type ConversationSummary struct {
	ID           string    `json:"id"`
	Messages     int       `json:"messages"`
	FirstMessage string    `json:"first_message"`
	CreatedAt    time.Time `json:"created_at"`
}

type Stats struct {
	Diagnoses     int64 `json:"diagnoses"`
	Conversations int64 `json:"conversations"`
}

type Overview struct {
	Name                string                `json:"name"`
	FarmSize            string                `json:"farm_size"`
	Location            string                `json:"location"`
	Language            string                `json:"language"`
	Stats               Stats                 `json:"stats"`
	RecentDiagnoses     []DiagnosisSummary    `json:"recent_diagnoses"`
	RecentConversations []ConversationSummary `json:"recent_conversations"`
}

type DashboardService interface {
	Overview(ctx context.Context, userID string) (*Overview, error)
}
