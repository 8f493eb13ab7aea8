package agriconnect

import "github.com/agriconnect/agriconnect/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleInvalid    = runtimeconfig.ErrDefaultLocaleInvalid
	ErrDefaultLocaleNotListed  = runtimeconfig.ErrDefaultLocaleNotListed
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCookieNameRequired      = runtimeconfig.ErrCookieNameRequired
	ErrIdentityHeaderRequired  = runtimeconfig.ErrIdentityHeaderRequired
	ErrWebhookSecretRequired   = runtimeconfig.ErrWebhookSecretRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	I18NConfig     = runtimeconfig.I18NConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	WebhooksConfig = runtimeconfig.WebhooksConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file and applies AGRICONNECT_* environment
// overrides on top of it.
func LoadConfig(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	runtimeconfig.ApplyEnv(&cfg, lookup)
	return cfg, nil
}
