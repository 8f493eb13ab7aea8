package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agriconnect/agriconnect/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"empty default locale", func(c *runtimeconfig.Config) { c.DefaultLocale = " " }, runtimeconfig.ErrDefaultLocaleRequired},
		{"malformed default locale", func(c *runtimeconfig.Config) { c.DefaultLocale = "not a tag!" }, runtimeconfig.ErrDefaultLocaleInvalid},
		{"default not listed", func(c *runtimeconfig.Config) { c.DefaultLocale = "fr" }, runtimeconfig.ErrDefaultLocaleNotListed},
		{"cookie name", func(c *runtimeconfig.Config) { c.I18N.CookieName = "" }, runtimeconfig.ErrCookieNameRequired},
		{"identity header", func(c *runtimeconfig.Config) { c.HTTP.IdentityHeader = "" }, runtimeconfig.ErrIdentityHeaderRequired},
		{"storage provider", func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" }, runtimeconfig.ErrStorageProviderUnknown},
		{"storage driver", func(c *runtimeconfig.Config) {
			c.Storage.Provider = "bun"
			c.Storage.Driver = "mysql"
			c.Storage.DSN = "x"
		}, runtimeconfig.ErrStorageDriverUnknown},
		{"storage dsn", func(c *runtimeconfig.Config) { c.Storage.Provider = "bun" }, runtimeconfig.ErrStorageDSNRequired},
		{"webhook secret", func(c *runtimeconfig.Config) { c.Webhooks.Enabled = true }, runtimeconfig.ErrWebhookSecretRequired},
		{"logging provider", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = ""
		}, runtimeconfig.ErrLoggingProviderRequired},
		{"logging provider unknown", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "syslog"
		}, runtimeconfig.ErrLoggingProviderUnknown},
		{"logging level", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Level = "loud"
		}, runtimeconfig.ErrLoggingLevelInvalid},
		{"logging format", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agriconnect.yaml")
	doc := []byte(`
default_locale: hi
storage:
  provider: bun
  dsn: "file:agri.db"
cache:
  default_ttl: 5m
`)
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DefaultLocale != "hi" || cfg.Storage.Provider != "bun" || cfg.Storage.DSN != "file:agri.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %v", cfg.Cache.DefaultTTL)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.I18N.CookieName != "preferredLanguage" {
		t.Fatalf("expected untouched defaults, got %+v", cfg)
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := runtimeconfig.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"AGRICONNECT_DSN":            "postgres://localhost/agri",
		"AGRICONNECT_DB_DRIVER":      "postgres",
		"AGRICONNECT_WEBHOOK_SECRET": "whsec_test",
	}
	cfg := runtimeconfig.DefaultConfig()
	runtimeconfig.ApplyEnv(&cfg, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})

	if cfg.Storage.Provider != "bun" || cfg.Storage.Driver != "postgres" {
		t.Fatalf("expected bun/postgres storage, got %+v", cfg.Storage)
	}
	if !cfg.Webhooks.Enabled || cfg.Webhooks.Secret != "whsec_test" {
		t.Fatalf("expected webhooks enabled, got %+v", cfg.Webhooks)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
