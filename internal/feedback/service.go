package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/util"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// SubmitInput is the user-facing feedback form.
type SubmitInput struct {
	Rating      *int   `json:"rating,omitempty"`
	Comments    string `json:"comments"`
	PageContext string `json:"page_context,omitempty"`
}

func (in SubmitInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Comments, validation.Required),
		validation.Field(&in.Rating, validation.When(in.Rating != nil,
			validation.Required.Error("must be between 1 and 5"),
			validation.Min(1),
			validation.Max(5),
		)),
	)
}

// Service records feedback.
type Service struct {
	repo   Repository
	logger interfaces.Logger
	now    func() time.Time
}

type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Submit stores feedback. userKey may be empty for anonymous visitors.
func (s *Service) Submit(ctx context.Context, userKey string, input SubmitInput) (*Entry, error) {
	input.Comments = strings.TrimSpace(input.Comments)
	if err := input.Validate(); err != nil {
		return nil, err
	}
	record, err := s.repo.Create(ctx, &Entry{
		ID:          uuid.New(),
		UserKey:     util.OptionalString(userKey),
		Rating:      input.Rating,
		Comments:    input.Comments,
		PageContext: util.OptionalString(input.PageContext),
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("feedback.submitted", "feedback_id", record.ID, "anonymous", record.UserKey == nil)
	return record, nil
}

// ListByUser returns feedback left by userKey, newest first.
func (s *Service) ListByUser(ctx context.Context, userKey string) ([]*Entry, error) {
	if err := domain.RequireIdentity(strings.TrimSpace(userKey)); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, strings.TrimSpace(userKey))
}

// List returns all feedback, newest first.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.repo.List(ctx, "")
}
