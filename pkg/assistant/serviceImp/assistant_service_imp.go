package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/ai"
	"kisan/pkg/apperr"
	"kisan/pkg/assistant/repository"
	"kisan/pkg/assistant/service"
	"kisan/pkg/feed"
)

// heard is the recognizer's canned transcript.
const heard = "ಟೊಮೇಟೊ ಬೆಲೆ ಎಷ್ಟು ಇದೆ ಇಂದು?"

type sample struct{ kannada, english, category string }

var samples = []sample{
	{"ಟೊಮೇಟೊ ಬೆಲೆ ಎಷ್ಟು ಇದೆ?", "What is the tomato price today?", "Market Prices"},
	{"ಎಲೆಗಳ ಮೇಲೆ ಹಳದಿ ಚುಕ್ಕೆಗಳು ಏಕೆ?", "Why are there yellow spots on leaves?", "Crop Diagnosis"},
	{"ಸಬ್ಸಿಡಿ ಸ್ಕೀಮ್ ಗಳು ಯಾವುವು?", "What subsidy schemes are available?", "Government Schemes"},
}

type Timing struct {
	Listen time.Duration
	Reply  time.Duration
	Speak  time.Duration
}

type assistantSvc struct {
	repo   repository.ConversationRepository
	client ai.Client
	hub    *feed.Hub
	timing Timing
	log    *zap.Logger
	now    func() time.Time
}

func New(repo repository.ConversationRepository, client ai.Client, hub *feed.Hub, timing Timing, log *zap.Logger) service.AssistantService {
	return &assistantSvc{repo: repo, client: client, hub: hub, timing: timing, log: log, now: time.Now}
}

func (s *assistantSvc) Languages() []entities.Language { return entities.Languages }

func (s *assistantSvc) Samples(language string) []service.Sample {
	out := make([]service.Sample, len(samples))
	for i, q := range samples {
		text := q.english
		if strings.EqualFold(strings.TrimSpace(language), "kannada") {
			text = q.kannada
		}
		out[i] = service.Sample{Question: text, Category: q.category}
	}
	return out
}

// Listen pretends to transcribe audio. The audio is not inspected.
func (s *assistantSvc) Listen(ctx context.Context, language string, _ []byte) (*service.Utterance, error) {
	lang, err := resolveLanguage(language)
	if err != nil {
		return nil, err
	}
	if err := sleep(ctx, s.timing.Listen); err != nil {
		return nil, err
	}
	return &service.Utterance{Text: heard, Language: lang}, nil
}

func (s *assistantSvc) Ask(ctx context.Context, userID string, in service.AskInput) (*service.Exchange, error) {
	lang, err := resolveLanguage(in.Language)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperr.Validation("please ask a question")
	}
	q := entities.Turn{Role: entities.RoleUser, Content: text, Timestamp: s.now().UTC(), Language: lang}

	if err := sleep(ctx, s.timing.Reply); err != nil {
		return nil, err
	}
	answer := s.client.Reply(ctx, text, lang)
	at := s.now().UTC()
	ex := &service.Exchange{
		Question: q,
		Answer:   entities.Turn{Role: entities.RoleAssistant, Content: answer, Timestamp: at, Language: lang},
		Speech:   service.Speech{DurationMS: s.timing.Speak.Milliseconds(), Until: at.Add(s.timing.Speak)},
	}
	if in.Save {
		c, err := s.AddConversation(ctx, userID, []entities.Turn{ex.Question, ex.Answer})
		if err != nil {
			return nil, err
		}
		ex.ConversationID = c.ConversationID
	}
	return ex, nil
}

func (s *assistantSvc) AddConversation(ctx context.Context, userID string, turns []entities.Turn) (*entities.Conversation, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("sign in required")
	}
	if len(turns) == 0 {
		return nil, apperr.Validation("conversation has no messages")
	}
	now := s.now().UTC()
	msgs := make([]entities.Turn, len(turns))
	for i, t := range turns {
		role, ok := normalizeRole(t.Role)
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf("message %d: unknown type %q", i, t.Role))
		}
		if strings.TrimSpace(t.Content) == "" {
			return nil, apperr.Validation(fmt.Sprintf("message %d is empty", i))
		}
		lang, err := resolveLanguage(t.Language)
		if err != nil {
			return nil, err
		}
		t.Role, t.Language = role, lang
		if t.Timestamp.IsZero() {
			t.Timestamp = now
		}
		msgs[i] = t
	}

	c := &entities.Conversation{UserID: userID, Messages: msgs, CreatedAt: now}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	s.hub.Publish(feed.Topic{Collection: entities.CollectionConversations, UserID: userID})
	s.log.Info("conversation saved", zap.String("uid", userID), zap.String("id", c.ConversationID), zap.Int("messages", len(msgs)))
	return c, nil
}

func (s *assistantSvc) ListConversations(ctx context.Context, userID string, limit int) ([]entities.Conversation, error) {
	if userID == "" {
		return []entities.Conversation{}, nil
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *assistantSvc) CountConversations(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, nil
	}
	return s.repo.CountByUser(ctx, userID)
}

func normalizeRole(r entities.Role) (entities.Role, bool) {
	switch strings.ToLower(string(r)) {
	case "user":
		return entities.RoleUser, true
	case "assistant", "bot":
		return entities.RoleAssistant, true
	}
	return "", false
}

// resolveLanguage defaults an empty code and rejects unknown ones.
func resolveLanguage(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return entities.DefaultLanguage, nil
	}
	if !entities.IsLanguage(code) {
		return "", apperr.Validation("unsupported language")
	}
	return code, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
