package agriconnect

import (
	"context"
	"net/http"
	"strings"

	"github.com/agriconnect/agriconnect/internal/advisory"
	advisorycmd "github.com/agriconnect/agriconnect/internal/commands/advisory"
	"github.com/agriconnect/agriconnect/internal/di"
	"github.com/agriconnect/agriconnect/internal/feedback"
	"github.com/agriconnect/agriconnect/internal/languages"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/marketplace"
	"github.com/agriconnect/agriconnect/internal/prices"
	"github.com/agriconnect/agriconnect/internal/profiles"
	"github.com/agriconnect/agriconnect/internal/transport"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	"github.com/agriconnect/agriconnect/pkg/storage"
	"github.com/uptrace/bun"
)

// LanguageService exports the language catalog service.
type LanguageService = *languages.Service

// ProfileService exports the locale preference store.
type ProfileService = *profiles.Service

// MarketplaceService exports the produce listing service.
type MarketplaceService = *marketplace.Service

// TransportService exports the transport request service.
type TransportService = *transport.Service

// FeedbackService exports the feedback service.
type FeedbackService = *feedback.Service

// PriceService exports the market price service.
type PriceService = *prices.Service

// AdvisoryService exports the advisory and post-harvest content service.
type AdvisoryService = *advisory.Service

// SeedLanguage describes a language row created by SeedLanguages.
type SeedLanguage = languages.SeedLanguage

// Module is the top level marketplace runtime.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Open connects to the database named by cfg.Storage when the bun provider is
// selected and builds the module on top of it. The returned DB is nil for
// in-memory storage; callers close it when done.
func Open(ctx context.Context, cfg Config, opts ...di.Option) (*Module, *bun.DB, error) {
	if !strings.EqualFold(strings.TrimSpace(cfg.Storage.Provider), "bun") {
		module, err := New(cfg, opts...)
		return module, nil, err
	}
	db, err := storage.Open(ctx, storage.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
	})
	if err != nil {
		return nil, nil, err
	}
	module, err := New(cfg, append([]di.Option{di.WithBunDB(db)}, opts...)...)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return module, db, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Handler returns a mux with every route registered.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Register attaches the page, API and webhook routes to mux.
func (m *Module) Register(mux *http.ServeMux) error {
	return m.container.API().Register(mux)
}

// SeedLanguages inserts the languages missing from the catalog.
func (m *Module) SeedLanguages(ctx context.Context, seeds []SeedLanguage) (int, error) {
	return m.container.Languages().Seed(ctx, seeds)
}

// DefaultLanguages lists the languages shipped with a fresh install.
func DefaultLanguages() []SeedLanguage {
	return languages.DefaultSeeds()
}

func (m *Module) Languages() LanguageService {
	return m.container.Languages()
}

func (m *Module) Profiles() ProfileService {
	return m.container.Profiles()
}

func (m *Module) Marketplace() MarketplaceService {
	return m.container.Marketplace()
}

func (m *Module) Transport() TransportService {
	return m.container.Transport()
}

func (m *Module) Feedback() FeedbackService {
	return m.container.Feedback()
}

func (m *Module) Prices() PriceService {
	return m.container.Prices()
}

func (m *Module) Advisory() AdvisoryService {
	return m.container.Advisory()
}

// ImportAdvisory loads the Markdown articles under dir into the table for
// kind ("crop-advisory" or "post-harvest").
func (m *Module) ImportAdvisory(ctx context.Context, kind, dir string) (advisory.ImportResult, error) {
	handler := m.container.ImportAdvisoryHandler()
	if err := handler.Execute(ctx, advisorycmd.ImportDirectoryCommand{Kind: kind, Directory: dir}); err != nil {
		return handler.LastResult(), err
	}
	return handler.LastResult(), nil
}

// Logger returns a logger scoped to module from the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}
