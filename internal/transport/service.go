package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// CreateRequestInput describes a pickup request.
type CreateRequestInput struct {
	ProduceType         string `json:"produce_type"`
	Quantity            string `json:"quantity"`
	PickupLocation      string `json:"pickup_location"`
	DestinationLocation string `json:"destination_location"`
	DateNeeded          string `json:"date_needed"`
}

func (in CreateRequestInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ProduceType, validation.Required),
		validation.Field(&in.Quantity, validation.Required),
		validation.Field(&in.PickupLocation, validation.Required),
		validation.Field(&in.DestinationLocation, validation.Required),
		validation.Field(&in.DateNeeded, validation.Required, validation.Date(dateLayout)),
	)
}

func (in *CreateRequestInput) trim() {
	in.ProduceType = strings.TrimSpace(in.ProduceType)
	in.Quantity = strings.TrimSpace(in.Quantity)
	in.PickupLocation = strings.TrimSpace(in.PickupLocation)
	in.DestinationLocation = strings.TrimSpace(in.DestinationLocation)
	in.DateNeeded = strings.TrimSpace(in.DateNeeded)
}

type statusInput struct {
	Status RequestStatus `json:"status"`
}

func (in statusInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Status, validation.Required, validation.In(requestStatuses...)),
	)
}

// Service manages transport requests and the transporter directory.
type Service struct {
	requests     RequestRepository
	transporters TransporterRepository
	logger       interfaces.Logger
	now          func() time.Time
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

func NewService(requests RequestRepository, transporters TransporterRepository, opts ...ServiceOption) *Service {
	svc := &Service{
		requests:     requests,
		transporters: transporters,
		logger:       logging.NoOp(),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// CreateRequest files a pending request for farmerKey.
func (s *Service) CreateRequest(ctx context.Context, farmerKey string, input CreateRequestInput) (*Request, error) {
	if err := domain.RequireIdentity(farmerKey); err != nil {
		return nil, err
	}
	input.trim()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	record, err := s.requests.Create(ctx, &Request{
		ID:                  uuid.New(),
		FarmerKey:           farmerKey,
		ProduceType:         input.ProduceType,
		Quantity:            input.Quantity,
		PickupLocation:      input.PickupLocation,
		DestinationLocation: input.DestinationLocation,
		DateNeeded:          input.DateNeeded,
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transport.request.created", "request_id", record.ID, "farmer", farmerKey)
	return record, nil
}

// ListByFarmer returns requests filed by farmerKey, newest first.
func (s *Service) ListByFarmer(ctx context.Context, farmerKey string) ([]*Request, error) {
	if err := domain.RequireIdentity(farmerKey); err != nil {
		return nil, err
	}
	return s.requests.List(ctx, RequestFilter{FarmerKey: farmerKey})
}

// ListRequests returns every request, optionally narrowed by status.
func (s *Service) ListRequests(ctx context.Context, status RequestStatus) ([]*Request, error) {
	if status != "" {
		if err := (statusInput{Status: status}).Validate(); err != nil {
			return nil, err
		}
	}
	return s.requests.List(ctx, RequestFilter{Status: status})
}

// ListTransporters returns the carrier directory ordered by name.
func (s *Service) ListTransporters(ctx context.Context) ([]*Transporter, error) {
	return s.transporters.List(ctx)
}

// UpdateStatus moves a request owned by farmerKey to status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status RequestStatus, farmerKey string) (*Request, error) {
	if err := domain.RequireIdentity(farmerKey); err != nil {
		return nil, err
	}
	if err := (statusInput{Status: status}).Validate(); err != nil {
		return nil, err
	}
	record, err := s.owned(ctx, id, farmerKey)
	if err != nil {
		return nil, err
	}
	record.Status = status
	record.UpdatedAt = s.now()
	updated, err := s.requests.UpdateStatus(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("transport.request.status_updated", "request_id", id, "status", status)
	return updated, nil
}

// DeleteRequest removes a request owned by farmerKey while it is still pending.
func (s *Service) DeleteRequest(ctx context.Context, id uuid.UUID, farmerKey string) error {
	if err := domain.RequireIdentity(farmerKey); err != nil {
		return err
	}
	record, err := s.owned(ctx, id, farmerKey)
	if err != nil {
		return err
	}
	if record.Status != StatusPending {
		return fmt.Errorf("%w: transport request is %s", domain.ErrConflict, record.Status)
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("transport.request.deleted", "request_id", id)
	return nil
}

func (s *Service) owned(ctx context.Context, id uuid.UUID, farmerKey string) (*Request, error) {
	record, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.FarmerKey != farmerKey {
		s.logger.Warn("transport.request.not_owner", "request_id", id, "farmer", farmerKey)
		return nil, domain.ErrForbidden
	}
	return record, nil
}
