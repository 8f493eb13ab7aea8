package languages

import (
	"context"
	"errors"
	"strings"

	"github.com/agriconnect/agriconnect/internal/identity"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
)

// SeedLanguage describes a catalog row created by Seed.
type SeedLanguage struct {
	Code       string
	Name       string
	NativeName string
	IsDefault  bool
}

// Service reads the language catalog.
type Service struct {
	repo         Repository
	logger       interfaces.Logger
	defaultCode  string
	fallbackName string
}

// ServiceOption configures the catalog service.
type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultLocale overrides the system default code ("en").
func WithDefaultLocale(code string) ServiceOption {
	return func(s *Service) {
		if normalized := NormalizeCode(code); normalized != "" {
			s.defaultCode = normalized
		}
	}
}

// WithFallbackName sets the display name of the single fallback entry.
func WithFallbackName(name string) ServiceOption {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.fallbackName = trimmed
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:         repo,
		logger:       logging.NoOp(),
		defaultCode:  "en",
		fallbackName: "English (Error Fallback)",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Load returns the current catalog. Storage failures and an empty table both
// degrade to FallbackCatalog; Load never fails.
func (s *Service) Load(ctx context.Context) Catalog {
	if s.repo == nil {
		s.logger.Error("languages.load.failed", "error", errors.New("languages: repository not configured"))
		return s.fallback()
	}
	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("languages.load.failed", "error", err)
		return s.fallback()
	}
	if len(records) == 0 {
		s.logger.Warn("languages.load.empty")
		return s.fallback()
	}

	langs := make([]Language, 0, len(records))
	for _, record := range records {
		if record != nil {
			langs = append(langs, *record)
		}
	}
	catalog := NewCatalog(langs, s.defaultCode)
	if catalog.IsEmpty() {
		s.logger.Warn("languages.load.empty")
		return s.fallback()
	}
	s.logger.Debug("languages.load.success", "count", catalog.Len())
	return catalog
}

func (s *Service) fallback() Catalog {
	return FallbackCatalog(s.defaultCode, s.fallbackName)
}

// DefaultCode returns the configured system default.
func (s *Service) DefaultCode() string {
	return s.defaultCode
}

// Seed inserts the languages that are not stored yet and returns how many
// rows were created. Ids are derived from the code so reseeding is stable.
func (s *Service) Seed(ctx context.Context, seeds []SeedLanguage) (int, error) {
	if s.repo == nil {
		return 0, errors.New("languages: repository not configured")
	}
	created := 0
	for _, seed := range seeds {
		code := NormalizeCode(seed.Code)
		if code == "" {
			return created, ErrCodeRequired
		}
		name := strings.TrimSpace(seed.Name)
		if name == "" {
			return created, ErrNameRequired
		}

		_, err := s.repo.GetByCode(ctx, code)
		if err == nil {
			continue
		}
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return created, err
		}

		record := &Language{
			ID:        identity.LanguageUUID(code),
			Code:      code,
			Name:      name,
			IsDefault: seed.IsDefault,
		}
		if native := strings.TrimSpace(seed.NativeName); native != "" {
			record.NativeName = &native
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			return created, err
		}
		created++
		s.logger.Info("languages.seed.created", "code", code)
	}
	return created, nil
}

// DefaultSeeds lists the languages shipped with a fresh install.
func DefaultSeeds() []SeedLanguage {
	return []SeedLanguage{
		{Code: "en", Name: "English", NativeName: "English", IsDefault: true},
		{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
		{Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	}
}
