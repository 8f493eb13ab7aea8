package prices

import (
	"context"
	"strings"
	"time"

	"github.com/agriconnect/agriconnect/internal/identity"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

const dateLayout = "2006-01-02"

// RecordInput is one quoted price. Crop and market may be display names;
// they are reduced to slug keys before storage.
type RecordInput struct {
	Crop   string  `json:"crop"`
	Market string  `json:"market"`
	Price  float64 `json:"price"`
	Unit   string  `json:"unit"`
	Date   string  `json:"date"`
}

func (in RecordInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Crop, validation.Required),
		validation.Field(&in.Market, validation.Required),
		validation.Field(&in.Price, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&in.Unit, validation.Required),
		validation.Field(&in.Date, validation.Required, validation.Date(dateLayout)),
	)
}

// Service exposes market price queries.
type Service struct {
	repo   Repository
	logger interfaces.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// List returns prices matching filter, newest price date first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*MarketPrice, error) {
	filter.Crop = strings.TrimSpace(filter.Crop)
	filter.Market = strings.TrimSpace(filter.Market)
	return s.repo.List(ctx, filter)
}

// Latest returns the most recent price for a crop at a market, or nil when
// none has been recorded.
func (s *Service) Latest(ctx context.Context, crop, market string) (*MarketPrice, error) {
	records, err := s.repo.List(ctx, Filter{
		Crop:   strings.TrimSpace(crop),
		Market: strings.TrimSpace(market),
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// CropKeys lists the distinct crop keys with recorded prices.
func (s *Service) CropKeys(ctx context.Context) ([]string, error) {
	return s.repo.DistinctKeys(ctx, columnCrop)
}

// MarketKeys lists the distinct market keys with recorded prices.
func (s *Service) MarketKeys(ctx context.Context) ([]string, error) {
	return s.repo.DistinctKeys(ctx, columnMarket)
}

// Record stores a quote. Re-recording the same crop, market and date
// replaces the price.
func (s *Service) Record(ctx context.Context, input RecordInput) (*MarketPrice, error) {
	input.Crop = strings.TrimSpace(input.Crop)
	input.Market = strings.TrimSpace(input.Market)
	input.Unit = strings.TrimSpace(input.Unit)
	input.Date = strings.TrimSpace(input.Date)
	if err := input.Validate(); err != nil {
		return nil, err
	}
	cropKey, err := slug.Normalize(input.Crop)
	if err != nil {
		return nil, validation.Errors{"crop": err}
	}
	marketKey, err := slug.Normalize(input.Market)
	if err != nil {
		return nil, validation.Errors{"market": err}
	}
	date, _ := time.Parse(dateLayout, input.Date)

	record, err := s.repo.Upsert(ctx, &MarketPrice{
		ID:            identity.MarketPriceUUID(cropKey, marketKey, input.Date),
		CropNameKey:   cropKey,
		MarketNameKey: marketKey,
		Price:         input.Price,
		Unit:          input.Unit,
		PriceDate:     date.UTC(),
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("prices.recorded", "crop", cropKey, "market", marketKey, "date", input.Date)
	return record, nil
}
