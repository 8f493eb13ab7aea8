package agriconnect

import (
	"context"
	"embed"
	"io/fs"

	"github.com/agriconnect/agriconnect/internal/migrations"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// MigrationResult summarises one migrate or rollback run.
type MigrationResult = migrations.Result

// MigrationStatus describes one embedded migration.
type MigrationStatus = migrations.Status

// GetMigrationsFS returns the embedded migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// MigrationsDir returns the embedded migrations rooted at their directory.
func MigrationsDir() fs.FS {
	sub, err := fs.Sub(migrationsFS, "data/sql/migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies every pending embedded migration to db.
func Migrate(ctx context.Context, db *bun.DB, logger interfaces.Logger) (MigrationResult, error) {
	runner, err := newMigrationRunner(db, logger)
	if err != nil {
		return MigrationResult{}, err
	}
	return runner.Up(ctx)
}

// Rollback reverts the most recently applied migration group.
func Rollback(ctx context.Context, db *bun.DB, logger interfaces.Logger) (MigrationResult, error) {
	runner, err := newMigrationRunner(db, logger)
	if err != nil {
		return MigrationResult{}, err
	}
	return runner.Down(ctx)
}

// MigrationStatuses lists the embedded migrations and whether each is applied.
func MigrationStatuses(ctx context.Context, db *bun.DB) ([]MigrationStatus, error) {
	runner, err := newMigrationRunner(db, nil)
	if err != nil {
		return nil, err
	}
	return runner.Status(ctx)
}

func newMigrationRunner(db *bun.DB, logger interfaces.Logger) (*migrations.Runner, error) {
	return migrations.NewRunner(db, MigrationsDir(), migrations.WithLogger(logger))
}
