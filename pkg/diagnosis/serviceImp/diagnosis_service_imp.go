package serviceImp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/diagnosis/imagestore"
	"kisan/pkg/diagnosis/repository"
	"kisan/pkg/diagnosis/service"
	"kisan/pkg/feed"
)

const (
	msgSaved      = "Your crop diagnosis has been saved to your history."
	msgSaveFailed = "could not save diagnosis to history"
)

type Options struct {
	// Wait is how long an analysis takes.
	Wait     time.Duration
	MaxBytes int64
}

type diagnosisSvc struct {
	repo       repository.DiagnosisRepository
	images     imagestore.Store
	classifier service.Classifier
	hub        *feed.Hub
	opts       Options
	log        *zap.Logger
	now        func() time.Time
}

func New(repo repository.DiagnosisRepository, images imagestore.Store, classifier service.Classifier, hub *feed.Hub, opts Options, log *zap.Logger) service.DiagnosisService {
	return &diagnosisSvc{
		repo:       repo,
		images:     images,
		classifier: classifier,
		hub:        hub,
		opts:       opts,
		log:        log,
		now:        time.Now,
	}
}

func (s *diagnosisSvc) Analyze(ctx context.Context, userID string, image []byte) (*service.Analysis, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("sign in required")
	}
	if len(image) == 0 {
		return nil, apperr.Validation("please select an image")
	}
	if s.opts.MaxBytes > 0 && int64(len(image)) > s.opts.MaxBytes {
		return nil, apperr.New(apperr.KindTooLarge, fmt.Sprintf("image must be at most %d MB", s.opts.MaxBytes>>20))
	}
	if !strings.HasPrefix(http.DetectContentType(image), "image/") {
		return nil, apperr.Validation("file must be an image")
	}

	if err := sleep(ctx, s.opts.Wait); err != nil {
		return nil, err
	}
	f, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	// stored only once there is a result to attach it to
	url, err := s.images.Save(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	d := &entities.CropDiagnosis{
		ImageURL:        url,
		Disease:         f.Disease,
		Confidence:      f.Confidence,
		Severity:        f.Severity,
		Treatment:       f.Treatment,
		Prevention:      f.Prevention,
		LocalTreatments: f.LocalTreatments,
	}
	if err := s.Add(ctx, userID, d); err != nil {
		s.log.Error("save diagnosis", zap.String("uid", userID), zap.Error(err))
		d.UserID = userID
		return &service.Analysis{Diagnosis: d, Saved: false, Message: msgSaveFailed}, nil
	}
	return &service.Analysis{Diagnosis: d, Saved: true, Message: msgSaved}, nil
}

func (s *diagnosisSvc) Add(ctx context.Context, userID string, d *entities.CropDiagnosis) error {
	if userID == "" {
		return apperr.Unauthenticated("sign in required")
	}
	if d.Confidence < 0 || d.Confidence > 100 {
		return apperr.Validation("confidence must be between 0 and 100")
	}
	d.DiagnosisID = ""
	d.UserID = userID
	d.Timestamp = s.now().UTC()
	if err := s.repo.Create(ctx, d); err != nil {
		return fmt.Errorf("create diagnosis: %w", err)
	}
	s.hub.Publish(feed.Topic{Collection: entities.CollectionDiagnoses, UserID: userID})
	s.log.Info("diagnosis saved", zap.String("uid", userID), zap.String("id", d.DiagnosisID))
	return nil
}

func (s *diagnosisSvc) List(ctx context.Context, userID string, limit int) ([]entities.CropDiagnosis, error) {
	if userID == "" {
		return []entities.CropDiagnosis{}, nil
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *diagnosisSvc) Count(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, nil
	}
	return s.repo.CountByUser(ctx, userID)
}

// sleep waits d or until ctx ends.
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
