package marketplace

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/util"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var errEmptyUpdate = errors.New("at least one field must be provided")

// CreateListingInput describes a new listing.
type CreateListingInput struct {
	CropType    string  `json:"crop_type"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

func (in CreateListingInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CropType, validation.Required),
		validation.Field(&in.Quantity, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&in.Price, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

// UpdateListingInput carries a partial update. Nil fields are left unchanged.
type UpdateListingInput struct {
	ID          uuid.UUID `json:"-"`
	CropType    *string   `json:"crop_type,omitempty"`
	Quantity    *float64  `json:"quantity,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

func (in UpdateListingInput) empty() bool {
	return in.CropType == nil && in.Quantity == nil && in.Price == nil && in.Description == nil && in.Status == nil
}

func (in UpdateListingInput) Validate() error {
	if in.empty() {
		return validation.Errors{"fields": errEmptyUpdate}
	}
	return validation.ValidateStruct(&in,
		validation.Field(&in.CropType, validation.When(in.CropType != nil, validation.Required)),
		validation.Field(&in.Quantity, validation.When(in.Quantity != nil, validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&in.Price, validation.When(in.Price != nil, validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&in.Status, validation.When(in.Status != nil, validation.Required, validation.In(StatusAvailable, StatusSold, StatusDelisted))),
	)
}

// Service manages marketplace listings.
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

// Create publishes a listing owned by sellerKey.
func (s *Service) Create(ctx context.Context, sellerKey string, input CreateListingInput) (*Listing, error) {
	if err := domain.RequireIdentity(sellerKey); err != nil {
		return nil, err
	}
	input.CropType = strings.TrimSpace(input.CropType)
	if err := input.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	record, err := s.repo.Create(ctx, &Listing{
		ID:          uuid.New(),
		SellerKey:   sellerKey,
		CropType:    input.CropType,
		Quantity:    input.Quantity,
		Price:       input.Price,
		Description: util.OptionalString(input.Description),
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("marketplace.listing.created", "listing_id", record.ID, "seller", sellerKey)
	return record, nil
}

// List returns every listing, newest first.
func (s *Service) List(ctx context.Context) ([]*Listing, error) {
	return s.repo.List(ctx, ListFilter{})
}

// ListAvailable returns listings still open for sale, newest first.
func (s *Service) ListAvailable(ctx context.Context) ([]*Listing, error) {
	return s.repo.List(ctx, ListFilter{Status: StatusAvailable})
}

// ListBySeller returns the listings owned by sellerKey, newest first.
func (s *Service) ListBySeller(ctx context.Context, sellerKey string) ([]*Listing, error) {
	if err := domain.RequireIdentity(sellerKey); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{SellerKey: sellerKey})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a partial update to a listing owned by sellerKey.
func (s *Service) Update(ctx context.Context, sellerKey string, input UpdateListingInput) (*Listing, error) {
	if err := domain.RequireIdentity(sellerKey); err != nil {
		return nil, err
	}
	if input.CropType != nil {
		trimmed := strings.TrimSpace(*input.CropType)
		input.CropType = &trimmed
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	record, err := s.owned(ctx, sellerKey, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CropType != nil {
		record.CropType = *input.CropType
	}
	if input.Quantity != nil {
		record.Quantity = *input.Quantity
	}
	if input.Price != nil {
		record.Price = *input.Price
	}
	if input.Description != nil {
		record.Description = util.OptionalString(*input.Description)
	}
	if input.Status != nil {
		record.Status = *input.Status
	}
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("marketplace.listing.updated", "listing_id", updated.ID, "status", updated.Status)
	return updated, nil
}

// Delete removes a listing owned by sellerKey.
func (s *Service) Delete(ctx context.Context, sellerKey string, id uuid.UUID) error {
	if err := domain.RequireIdentity(sellerKey); err != nil {
		return err
	}
	if _, err := s.owned(ctx, sellerKey, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("marketplace.listing.deleted", "listing_id", id)
	return nil
}

func (s *Service) owned(ctx context.Context, sellerKey string, id uuid.UUID) (*Listing, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.SellerKey != sellerKey {
		s.logger.Warn("marketplace.listing.not_owner", "listing_id", id, "seller", sellerKey)
		return nil, domain.ErrForbidden
	}
	return record, nil
}
