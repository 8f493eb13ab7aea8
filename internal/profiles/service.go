package profiles

import (
	"context"
	"strings"
	"time"

	"github.com/agriconnect/agriconnect/internal/identity"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
)

// LookupStatus classifies the result of a preference read.
type LookupStatus string

const (
	LookupFound   LookupStatus = "found"
	LookupMissing LookupStatus = "missing"
	LookupFailed  LookupStatus = "failed"
)

// PreferenceLookup is the result of GetPreferredLocale. Callers treat missing
// and failed alike; Err is set only for LookupFailed.
type PreferenceLookup struct {
	Code   string
	Status LookupStatus
	Err    error
}

// Found reports whether a stored code was returned.
func (l PreferenceLookup) Found() bool {
	return l.Status == LookupFound && l.Code != ""
}

// EnsureProfileInput carries the identity-provider data used when a profile
// is created from a user.created event.
type EnsureProfileInput struct {
	IdentityKey string
	Name        string
}

// Service reads and writes locale preferences.
type Service struct {
	repo        Repository
	logger      interfaces.Logger
	defaultCode string
	now         func() time.Time
}

type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultLocale sets the code stored on newly created profiles.
func WithDefaultLocale(code string) ServiceOption {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			s.defaultCode = trimmed
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:        repo,
		logger:      logging.NoOp(),
		defaultCode: "en",
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// GetPreferredLocale reads the stored preference for identityKey. A missing
// row is expected for new identities and is logged at info level; storage
// failures are logged as errors.
func (s *Service) GetPreferredLocale(ctx context.Context, identityKey string) PreferenceLookup {
	key := strings.TrimSpace(identityKey)
	if key == "" {
		return PreferenceLookup{Status: LookupFailed, Err: ErrIdentityKeyRequired}
	}
	logger := logging.WithFields(s.logger, map[string]any{"identity": key})

	record, err := s.repo.GetByIdentityKey(ctx, key)
	switch {
	case IsNotFound(err):
		logger.Info("profiles.preference.missing")
		return PreferenceLookup{Status: LookupMissing}
	case err != nil:
		logger.Error("profiles.preference.lookup_failed", "error", err)
		return PreferenceLookup{Status: LookupFailed, Err: err}
	}

	code := strings.TrimSpace(record.PreferredLanguageCode)
	if code == "" {
		logger.Info("profiles.preference.empty")
		return PreferenceLookup{Status: LookupMissing}
	}
	return PreferenceLookup{Code: code, Status: LookupFound}
}

// UpsertPreference stores code for identityKey. With a nil code the profile
// is only created when absent, so an existing preference is preserved and a
// new profile receives the default locale.
func (s *Service) UpsertPreference(ctx context.Context, identityKey string, code *string) (*Profile, error) {
	key := strings.TrimSpace(identityKey)
	if key == "" {
		return nil, ErrIdentityKeyRequired
	}
	logger := logging.WithFields(s.logger, map[string]any{"identity": key})
	now := s.now()

	if code == nil {
		stored, created, err := s.repo.CreateIfAbsent(ctx, s.newProfile(key, nil, s.defaultCode, now))
		if err != nil {
			logger.Error("profiles.preference.ensure_failed", "error", err)
			return nil, err
		}
		if created {
			logger.Info("profiles.preference.created", "locale", stored.PreferredLanguageCode)
		}
		return stored, nil
	}

	value := strings.TrimSpace(*code)
	if value == "" {
		return nil, ErrLanguageRequired
	}
	stored, err := s.repo.Upsert(ctx, s.newProfile(key, nil, value, now))
	if err != nil {
		logger.Error("profiles.preference.upsert_failed", "locale", value, "error", err)
		return nil, err
	}
	logger.Info("profiles.preference.updated", "locale", stored.PreferredLanguageCode)
	return stored, nil
}

// EnsureProfile creates the profile for a newly registered identity with the
// default locale. An existing profile is returned untouched, so the first
// writer decides the stored locale.
func (s *Service) EnsureProfile(ctx context.Context, input EnsureProfileInput) (*Profile, bool, error) {
	key := strings.TrimSpace(input.IdentityKey)
	if key == "" {
		return nil, false, ErrIdentityKeyRequired
	}
	var name *string
	if trimmed := strings.TrimSpace(input.Name); trimmed != "" {
		name = &trimmed
	}

	stored, created, err := s.repo.CreateIfAbsent(ctx, s.newProfile(key, name, s.defaultCode, s.now()))
	if err != nil {
		s.logger.Error("profiles.ensure.failed", "identity", key, "error", err)
		return nil, false, err
	}
	if created {
		s.logger.Info("profiles.ensure.created", "identity", key)
	} else {
		s.logger.Debug("profiles.ensure.exists", "identity", key)
	}
	return stored, created, nil
}

func (s *Service) newProfile(key string, name *string, code string, now time.Time) *Profile {
	return &Profile{
		ID:                    identity.ProfileUUID(key),
		IdentityKey:           key,
		Name:                  name,
		PreferredLanguageCode: code,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}
