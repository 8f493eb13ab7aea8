package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/agriconnect/agriconnect"
	"github.com/agriconnect/agriconnect/pkg/storage"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

type globalOptions struct {
	configPath string
	logLevel   string
	dsn        string
	driver     string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "agriconnect",
		Short:         "Multilingual marketplace server for farmers and transporters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "Database DSN; selects bun storage")
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "Database driver (sqlite or postgres)")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newImportCommand(opts),
	)
	return root
}

// loadConfig reads --config, applies AGRICONNECT_* variables and then the
// command-line overrides. Logging is always on for the CLI.
func (o *globalOptions) loadConfig() (agriconnect.Config, error) {
	cfg, err := agriconnect.LoadConfig(o.configPath, os.LookupEnv)
	if err != nil {
		return cfg, err
	}
	cfg.Features.Logger = true
	if level := strings.TrimSpace(o.logLevel); level != "" {
		cfg.Logging.Level = level
	}
	if dsn := strings.TrimSpace(o.dsn); dsn != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.DSN = dsn
	}
	if driver := strings.TrimSpace(o.driver); driver != "" {
		cfg.Storage.Driver = driver
	}
	return cfg, cfg.Validate()
}

// openDatabase connects to the configured database. Commands that only make
// sense against persistent storage call it instead of agriconnect.Open.
func openDatabase(ctx context.Context, cfg agriconnect.Config) (*bun.DB, error) {
	if !strings.EqualFold(strings.TrimSpace(cfg.Storage.Provider), "bun") {
		return nil, fmt.Errorf("storage provider %q has no database; pass --dsn or set AGRICONNECT_DSN", cfg.Storage.Provider)
	}
	return storage.Open(ctx, storage.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
	})
}
