package serviceImp

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"kisan/entities"
	"kisan/pkg/dashboard/service"
)

const (
	recentDiagnoses     = 3
	recentConversations = 2
)

type Profiles interface {
	Profile(ctx context.Context, userID string) (*entities.User, error)
}

type Diagnoses interface {
	List(ctx context.Context, userID string, limit int) ([]entities.CropDiagnosis, error)
	Count(ctx context.Context, userID string) (int64, error)
}

type Conversations interface {
	ListConversations(ctx context.Context, userID string, limit int) ([]entities.Conversation, error)
	CountConversations(ctx context.Context, userID string) (int64, error)
}

type dashboardSvc struct {
	profiles      Profiles
	diagnoses     Diagnoses
	conversations Conversations
}

func New(profiles Profiles, diagnoses Diagnoses, conversations Conversations) service.DashboardService {
	return &dashboardSvc{profiles: profiles, diagnoses: diagnoses, conversations: conversations}
}

func (s *dashboardSvc) Overview(ctx context.Context, userID string) (*service.Overview, error) {
	u, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &service.Overview{
		Name:                u.Name,
		FarmSize:            orDefault(u.FarmSize, "N/A"),
		Location:            orDefault(u.Location, "Not set"),
		Language:            u.Language,
		RecentDiagnoses:     []service.DiagnosisSummary{},
		RecentConversations: []service.ConversationSummary{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.diagnoses.Count(gctx, userID)
		if err != nil {
			return fmt.Errorf("count diagnoses: %w", err)
		}
		list, err := s.diagnoses.List(gctx, userID, recentDiagnoses)
		if err != nil {
			return fmt.Errorf("recent diagnoses: %w", err)
		}
		out.Stats.Diagnoses = n
		for _, d := range list {
			out.RecentDiagnoses = append(out.RecentDiagnoses, service.DiagnosisSummary{
				ID: d.DiagnosisID, Disease: d.Disease, Severity: d.Severity, Confidence: d.Confidence, Timestamp: d.Timestamp,
			})
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.conversations.CountConversations(gctx, userID)
		if err != nil {
			return fmt.Errorf("count conversations: %w", err)
		}
		list, err := s.conversations.ListConversations(gctx, userID, recentConversations)
		if err != nil {
			return fmt.Errorf("recent conversations: %w", err)
		}
		out.Stats.Conversations = n
		for _, c := range list {
			sum := service.ConversationSummary{ID: c.ConversationID, Messages: len(c.Messages), CreatedAt: c.CreatedAt}
			if len(c.Messages) > 0 {
				sum.FirstMessage = c.Messages[0].Content
			}
			out.RecentConversations = append(out.RecentConversations, sum)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
