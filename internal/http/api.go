package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/agriconnect/agriconnect/internal/advisory"
	"github.com/agriconnect/agriconnect/internal/feedback"
	"github.com/agriconnect/agriconnect/internal/locale"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/marketplace"
	"github.com/agriconnect/agriconnect/internal/prices"
	"github.com/agriconnect/agriconnect/internal/transport"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	"github.com/google/uuid"
)

// ListingService is the marketplace surface used by the API.
type ListingService interface {
	Create(ctx context.Context, sellerKey string, input marketplace.CreateListingInput) (*marketplace.Listing, error)
	ListAvailable(ctx context.Context) ([]*marketplace.Listing, error)
	ListBySeller(ctx context.Context, sellerKey string) ([]*marketplace.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*marketplace.Listing, error)
	Update(ctx context.Context, sellerKey string, input marketplace.UpdateListingInput) (*marketplace.Listing, error)
	Delete(ctx context.Context, sellerKey string, id uuid.UUID) error
}

// TransportService is the transport surface used by the API.
type TransportService interface {
	CreateRequest(ctx context.Context, farmerKey string, input transport.CreateRequestInput) (*transport.Request, error)
	ListByFarmer(ctx context.Context, farmerKey string) ([]*transport.Request, error)
	ListTransporters(ctx context.Context) ([]*transport.Transporter, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status transport.RequestStatus, farmerKey string) (*transport.Request, error)
	DeleteRequest(ctx context.Context, id uuid.UUID, farmerKey string) error
}

// FeedbackService is the feedback surface used by the API.
type FeedbackService interface {
	Submit(ctx context.Context, userKey string, input feedback.SubmitInput) (*feedback.Entry, error)
	ListByUser(ctx context.Context, userKey string) ([]*feedback.Entry, error)
}

// PriceService is the market price surface used by the API.
type PriceService interface {
	List(ctx context.Context, filter prices.Filter) ([]*prices.MarketPrice, error)
	Latest(ctx context.Context, crop, market string) (*prices.MarketPrice, error)
	CropKeys(ctx context.Context) ([]string, error)
	MarketKeys(ctx context.Context) ([]string, error)
}

// AdvisoryService is the advisory content surface used by the API.
type AdvisoryService interface {
	Topics(ctx context.Context, kind advisory.Kind, languageCode string) ([]advisory.Topic, error)
	Content(ctx context.Context, kind advisory.Kind, topicKey, languageCode string) (*advisory.Content, error)
	Categories(ctx context.Context, kind advisory.Kind) ([]string, error)
}

// API registers the page and JSON endpoints.
type API struct {
	apiBase     string
	cookieName  string
	catalog     locale.CatalogLoader
	preferences locale.PreferenceStore
	identity    IdentitySource
	listings    ListingService
	transport   TransportService
	feedback    FeedbackService
	prices      PriceService
	advisory    AdvisoryService
	webhook     http.Handler
	logger      interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API. The catalog loader and preference store drive the
// locale middleware and are required by Register.
func NewAPI(catalog locale.CatalogLoader, preferences locale.PreferenceStore, opts ...Option) *API {
	api := &API{
		apiBase:     "/api",
		catalog:     catalog,
		preferences: preferences,
		identity:    HeaderIdentity(DefaultIdentityHeader),
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithAPIBasePath overrides the JSON API prefix (defaults to "/api").
func WithAPIBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.apiBase = trimmed
		}
	}
}

// WithCookieName sets the cookie holding a signed-out user's locale.
func WithCookieName(name string) Option {
	return func(api *API) {
		api.cookieName = strings.TrimSpace(name)
	}
}

// WithIdentitySource replaces the header-based identity lookup.
func WithIdentitySource(source IdentitySource) Option {
	return func(api *API) {
		if source != nil {
			api.identity = source
		}
	}
}

func WithListingService(service ListingService) Option {
	return func(api *API) {
		api.listings = service
	}
}

func WithTransportService(service TransportService) Option {
	return func(api *API) {
		api.transport = service
	}
}

func WithFeedbackService(service FeedbackService) Option {
	return func(api *API) {
		api.feedback = service
	}
}

func WithPriceService(service PriceService) Option {
	return func(api *API) {
		api.prices = service
	}
}

func WithAdvisoryService(service AdvisoryService) Option {
	return func(api *API) {
		api.advisory = service
	}
}

// WithWebhookHandler mounts the identity provider webhook.
func WithWebhookHandler(handler http.Handler) Option {
	return func(api *API) {
		api.webhook = handler
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches every endpoint to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}
	if api.catalog == nil {
		return fmt.Errorf("http: catalog loader is required")
	}

	base := joinPath(api.apiBase, "")

	api.registerLocaleRoutes(mux, base)
	api.registerPageRoutes(mux)
	api.registerListingRoutes(mux, base)
	api.registerTransportRoutes(mux, base)
	api.registerPriceRoutes(mux, base)
	api.registerFeedbackRoutes(mux, base)
	if api.webhook != nil {
		mux.Handle("POST "+joinPath(base, "webhooks/identity"), api.webhook)
	}

	return nil
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}
