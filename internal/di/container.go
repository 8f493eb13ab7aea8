package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agriconnect/agriconnect/internal/advisory"
	"github.com/agriconnect/agriconnect/internal/commands"
	advisorycmd "github.com/agriconnect/agriconnect/internal/commands/advisory"
	profilescmd "github.com/agriconnect/agriconnect/internal/commands/profiles"
	"github.com/agriconnect/agriconnect/internal/feedback"
	apihttp "github.com/agriconnect/agriconnect/internal/http"
	"github.com/agriconnect/agriconnect/internal/languages"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/logging/console"
	"github.com/agriconnect/agriconnect/internal/logging/gologger"
	"github.com/agriconnect/agriconnect/internal/markdown"
	"github.com/agriconnect/agriconnect/internal/marketplace"
	"github.com/agriconnect/agriconnect/internal/prices"
	"github.com/agriconnect/agriconnect/internal/profiles"
	"github.com/agriconnect/agriconnect/internal/runtimeconfig"
	"github.com/agriconnect/agriconnect/internal/transport"
	"github.com/agriconnect/agriconnect/internal/webhooks"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires repositories, services, command handlers and the HTTP API.
// Repositories are in-memory unless a bun database is supplied.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	identitySource apihttp.IdentitySource
	verifier       webhooks.Verifier
	verifierSet    bool

	languageRepo    languages.Repository
	profileRepo     profiles.Repository
	listingRepo     marketplace.Repository
	requestRepo     transport.RequestRepository
	transporterRepo transport.TransporterRepository
	feedbackRepo    feedback.Repository
	priceRepo       prices.Repository
	advisoryRepo    advisory.Repository

	languageSvc  *languages.Service
	profileSvc   *profiles.Service
	listingSvc   *marketplace.Service
	transportSvc *transport.Service
	feedbackSvc  *feedback.Service
	priceSvc     *prices.Service
	advisorySvc  *advisory.Service

	syncProfile    *profilescmd.SyncProfileHandler
	importAdvisory *advisorycmd.ImportDirectoryHandler
	webhook        *webhooks.Handler
	api            *apihttp.API
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches every repository to bun over db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCache overrides the default cache provider.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithIdentitySource replaces the header-based identity lookup used by the API.
func WithIdentitySource(source apihttp.IdentitySource) Option {
	return func(c *Container) {
		c.identitySource = source
	}
}

// WithWebhookVerifier overrides the svix verifier built from the webhook
// secret. A nil verifier makes the webhook answer 500.
func WithWebhookVerifier(verifier webhooks.Verifier) Option {
	return func(c *Container) {
		c.verifier = verifier
		c.verifierSet = true
	}
}

// NewContainer validates cfg and builds the dependency graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:          cfg,
		cacheTTL:        cacheTTL,
		languageRepo:    languages.NewMemoryRepository(),
		profileRepo:     profiles.NewMemoryRepository(),
		listingRepo:     marketplace.NewMemoryRepository(),
		requestRepo:     transport.NewMemoryRequestRepository(),
		transporterRepo: transport.NewMemoryTransporterRepository(),
		feedbackRepo:    feedback.NewMemoryRepository(),
		priceRepo:       prices.NewMemoryRepository(),
		advisoryRepo:    advisory.NewMemoryRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "agriconnect.di")

	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	c.seedLanguages()

	if err := c.configureWebhook(); err != nil {
		return nil, err
	}
	c.configureAPI()

	c.logger.Info("di.container.ready", "storage", c.storageName(), "cache", c.cacheService != nil)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

// configureRepositories swaps the memory defaults for bun repositories. Only
// the language catalog is cached; every other table is read-your-writes.
func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	if c.cacheService != nil {
		c.languageRepo = languages.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.languageRepo = languages.NewBunRepository(c.bunDB)
	}
	c.profileRepo = profiles.NewBunRepository(c.bunDB)
	c.listingRepo = marketplace.NewBunRepository(c.bunDB)
	c.requestRepo = transport.NewBunRequestRepository(c.bunDB)
	c.transporterRepo = transport.NewBunTransporterRepository(c.bunDB)
	c.feedbackRepo = feedback.NewBunRepository(c.bunDB)
	c.priceRepo = prices.NewBunRepository(c.bunDB)
	c.advisoryRepo = advisory.NewBunRepository(c.bunDB)
}

func (c *Container) configureServices() {
	provider := c.loggerProvider
	defaultLocale := c.Config.DefaultLocale

	c.languageSvc = languages.NewService(c.languageRepo,
		languages.WithLogger(logging.LanguagesLogger(provider)),
		languages.WithDefaultLocale(defaultLocale),
		languages.WithFallbackName(c.Config.I18N.FallbackName),
	)
	c.profileSvc = profiles.NewService(c.profileRepo,
		profiles.WithLogger(logging.ProfilesLogger(provider)),
		profiles.WithDefaultLocale(defaultLocale),
	)
	c.listingSvc = marketplace.NewService(c.listingRepo, marketplace.WithLogger(logging.MarketplaceLogger(provider)))
	c.transportSvc = transport.NewService(c.requestRepo, c.transporterRepo, transport.WithLogger(logging.TransportLogger(provider)))
	c.feedbackSvc = feedback.NewService(c.feedbackRepo, feedback.WithLogger(logging.FeedbackLogger(provider)))
	c.priceSvc = prices.NewService(c.priceRepo, prices.WithLogger(logging.PricesLogger(provider)))

	c.advisorySvc = advisory.NewService(c.advisoryRepo,
		advisory.WithLogger(logging.AdvisoryLogger(provider)),
		advisory.WithRenderer(markdown.NewRenderer(markdown.Options{
			Extensions: c.Config.Markdown.Extensions,
			SafeMode:   c.Config.Markdown.SafeMode,
		})),
	)

	c.syncProfile = profilescmd.NewSyncProfileHandler(c.profileSvc, commands.CommandLogger(provider, "profiles"))
	c.importAdvisory = advisorycmd.NewImportDirectoryHandler(c.advisorySvc, commands.CommandLogger(provider, "advisory"),
		advisorycmd.WithLocales(c.Config.I18N.Locales...),
	)
}

// seedLanguages inserts the configured locales that are missing from the
// catalog. A failure is logged; the catalog then degrades to its fallback.
func (c *Container) seedLanguages() {
	known := map[string]languages.SeedLanguage{}
	for _, seed := range languages.DefaultSeeds() {
		known[seed.Code] = seed
	}

	seeds := make([]languages.SeedLanguage, 0, len(c.Config.I18N.Locales))
	for _, code := range c.Config.I18N.Locales {
		normalized := languages.NormalizeCode(code)
		if normalized == "" {
			continue
		}
		seed, ok := known[normalized]
		if !ok {
			seed = languages.SeedLanguage{Code: normalized, Name: normalized}
		}
		seed.IsDefault = normalized == languages.NormalizeCode(c.Config.DefaultLocale)
		seeds = append(seeds, seed)
	}

	created, err := c.languageSvc.Seed(context.Background(), seeds)
	if err != nil {
		c.logger.Warn("di.languages.seed_failed", "error", err)
		return
	}
	if created > 0 {
		c.logger.Info("di.languages.seeded", "count", created)
	}
}

func (c *Container) configureWebhook() error {
	if !c.verifierSet && c.Config.Webhooks.Enabled {
		verifier, err := webhooks.NewSvixVerifier(c.Config.Webhooks.Secret)
		if err != nil {
			return err
		}
		c.verifier = verifier
	}
	c.webhook = webhooks.NewHandler(c.verifier, c.syncProfile,
		webhooks.WithLogger(logging.WebhooksLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureAPI() {
	features := c.Config.Features
	opts := []apihttp.Option{
		apihttp.WithCookieName(c.Config.I18N.CookieName),
		apihttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		apihttp.WithPriceService(c.priceSvc),
		apihttp.WithWebhookHandler(c.webhook),
	}
	if c.identitySource != nil {
		opts = append(opts, apihttp.WithIdentitySource(c.identitySource))
	} else {
		opts = append(opts, apihttp.WithIdentitySource(apihttp.HeaderIdentity(c.Config.HTTP.IdentityHeader)))
	}
	if features.Marketplace {
		opts = append(opts, apihttp.WithListingService(c.listingSvc))
	}
	if features.Transport {
		opts = append(opts, apihttp.WithTransportService(c.transportSvc))
	}
	if features.Feedback {
		opts = append(opts, apihttp.WithFeedbackService(c.feedbackSvc))
	}
	if features.Advisory {
		opts = append(opts, apihttp.WithAdvisoryService(c.advisorySvc))
	}
	c.api = apihttp.NewAPI(c.languageSvc, c.profileSvc, opts...)
}

func (c *Container) storageName() string {
	if c.bunDB != nil {
		return "bun"
	}
	return "memory"
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }
func (c *Container) BunDB() *bun.DB                            { return c.bunDB }
func (c *Container) API() *apihttp.API                         { return c.api }
func (c *Container) Languages() *languages.Service             { return c.languageSvc }
func (c *Container) Profiles() *profiles.Service               { return c.profileSvc }
func (c *Container) Marketplace() *marketplace.Service         { return c.listingSvc }
func (c *Container) Transport() *transport.Service             { return c.transportSvc }
func (c *Container) Feedback() *feedback.Service               { return c.feedbackSvc }
func (c *Container) Prices() *prices.Service                   { return c.priceSvc }
func (c *Container) Advisory() *advisory.Service               { return c.advisorySvc }

// SyncProfileHandler returns the command run for user.created deliveries.
func (c *Container) SyncProfileHandler() *profilescmd.SyncProfileHandler { return c.syncProfile }

// ImportAdvisoryHandler returns the command that loads markdown articles.
func (c *Container) ImportAdvisoryHandler() *advisorycmd.ImportDirectoryHandler {
	return c.importAdvisory
}
