package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

var ErrDefaultLocaleRequired = errors.New("agriconnect config: default locale is required")
var ErrDefaultLocaleInvalid = errors.New("agriconnect config: default locale is not a valid language tag")

// ErrDefaultLocaleNotListed keeps the configured locales and the default in sync.
var ErrDefaultLocaleNotListed = errors.New("agriconnect config: default locale must be listed in i18n locales")
var ErrStorageProviderUnknown = errors.New("agriconnect config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("agriconnect config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("agriconnect config: storage dsn is required for the bun provider")
var ErrCookieNameRequired = errors.New("agriconnect config: locale cookie name is required")
var ErrIdentityHeaderRequired = errors.New("agriconnect config: identity header is required")
var ErrWebhookSecretRequired = errors.New("agriconnect config: webhook secret is required when webhooks are enabled")
var ErrLoggingProviderRequired = errors.New("agriconnect config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("agriconnect config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("agriconnect config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("agriconnect config: logging format is invalid")

// Config aggregates runtime settings for the marketplace.
type Config struct {
	DefaultLocale string         `yaml:"default_locale"`
	I18N          I18NConfig     `yaml:"i18n"`
	Storage       StorageConfig  `yaml:"storage"`
	Cache         CacheConfig    `yaml:"cache"`
	HTTP          HTTPConfig     `yaml:"http"`
	Webhooks      WebhooksConfig `yaml:"webhooks"`
	Markdown      MarkdownConfig `yaml:"markdown"`
	Features      Features       `yaml:"features"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// I18NConfig lists the locales seeded into the catalog and the name shown for
// the fallback language when the catalog cannot be read.
type I18NConfig struct {
	Locales      []string `yaml:"locales"`
	FallbackName string   `yaml:"fallback_name"`
	CookieName   string   `yaml:"cookie_name"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	IdentityHeader  string        `yaml:"identity_header"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type WebhooksConfig struct {
	Enabled bool   `yaml:"enabled"`
	Secret  string `yaml:"secret"`
}

// MarkdownConfig controls advisory body rendering.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// Features toggles optional modules.
type Features struct {
	Marketplace bool `yaml:"marketplace"`
	Transport   bool `yaml:"transport"`
	Feedback    bool `yaml:"feedback"`
	Advisory    bool `yaml:"advisory"`
	Logger      bool `yaml:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns settings suitable for local development: in-memory
// storage, English default, and every module enabled.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		I18N: I18NConfig{
			Locales:      []string{"en", "hi", "mr"},
			FallbackName: "English (Error Fallback)",
			CookieName:   "preferredLanguage",
		},
		Storage: StorageConfig{
			Provider: "memory",
			Driver:   "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			IdentityHeader:  "X-Identity-Key",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm"},
			SafeMode:   true,
		},
		Features: Features{
			Marketplace: true,
			Transport:   true,
			Feedback:    true,
			Advisory:    true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	defaultLocale := strings.TrimSpace(cfg.DefaultLocale)
	if defaultLocale == "" {
		return ErrDefaultLocaleRequired
	}
	if _, err := language.Parse(defaultLocale); err != nil {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleInvalid, defaultLocale)
	}
	if len(cfg.I18N.Locales) > 0 && !containsFold(cfg.I18N.Locales, defaultLocale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleNotListed, defaultLocale)
	}
	if strings.TrimSpace(cfg.I18N.CookieName) == "" {
		return ErrCookieNameRequired
	}
	if strings.TrimSpace(cfg.HTTP.IdentityHeader) == "" {
		return ErrIdentityHeaderRequired
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", "memory":
	case "bun":
		switch driver := normalize(cfg.Storage.Driver); driver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Webhooks.Enabled && strings.TrimSpace(cfg.Webhooks.Secret) == "" {
		return ErrWebhookSecretRequired
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
