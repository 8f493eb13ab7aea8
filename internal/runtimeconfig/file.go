package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const envPrefix = "AGRICONNECT_"

// LoadFile overlays the YAML document at path on top of DefaultConfig. A
// missing file is not an error; the defaults are returned unchanged.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- operator supplied config path
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals a YAML document into cfg, keeping any field the
// document does not mention.
func Decode(raw []byte, cfg *Config) error {
	if cfg == nil {
		return errors.New("agriconnect config: nil destination")
	}
	return yaml.Unmarshal(raw, cfg)
}

// ApplyEnv overrides deployment secrets and addresses from the environment.
// lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if cfg == nil || lookup == nil {
		return
	}
	if value, ok := lookup(envPrefix + "DSN"); ok && value != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.DSN = value
	}
	if value, ok := lookup(envPrefix + "DB_DRIVER"); ok && value != "" {
		cfg.Storage.Driver = value
	}
	if value, ok := lookup(envPrefix + "ADDR"); ok && value != "" {
		cfg.HTTP.Addr = value
	}
	if value, ok := lookup(envPrefix + "WEBHOOK_SECRET"); ok && value != "" {
		cfg.Webhooks.Enabled = true
		cfg.Webhooks.Secret = value
	}
	if value, ok := lookup(envPrefix + "LOG_LEVEL"); ok && value != "" {
		cfg.Logging.Level = value
	}
}
