package migrations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var ErrDatabaseRequired = errors.New("migrations: database is required")

// Result summarises one Up or Down run.
type Result struct {
	GroupID int64    `json:"group_id"`
	Names   []string `json:"names"`
}

// Applied reports whether the run touched any migration.
func (r Result) Applied() bool {
	return len(r.Names) > 0
}

// Status describes a discovered migration.
type Status struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	GroupID int64  `json:"group_id"`
	Applied bool   `json:"applied"`
}

// ID joins the version and the file comment the way the file name does,
// e.g. "20251001000000_languages".
func (s Status) ID() string {
	return migrationID(s.Name, s.Comment)
}

func migrationID(name, comment string) string {
	if comment == "" {
		return name
	}
	return name + "_" + comment
}

// Runner applies the SQL files of a migration directory through bun/migrate.
// Files follow the "<version>_<name>.up.sql" / ".down.sql" convention and
// may split statements with "--bun:split".
type Runner struct {
	migrator *migrate.Migrator
	logger   interfaces.Logger
}

type RunnerOption func(*Runner)

func WithLogger(logger interfaces.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner discovers the migrations in fsys and binds them to db.
func NewRunner(db *bun.DB, fsys fs.FS, opts ...RunnerOption) (*Runner, error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	set := migrate.NewMigrations()
	if err := set.Discover(fsys); err != nil {
		return nil, fmt.Errorf("discover migrations: %w", err)
	}

	runner := &Runner{
		migrator: migrate.NewMigrator(db, set),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(runner)
		}
	}
	return runner, nil
}

// Up applies every pending migration as one group.
func (r *Runner) Up(ctx context.Context) (Result, error) {
	return r.run(ctx, "up", r.migrator.Migrate)
}

// Down rolls back the most recent group.
func (r *Runner) Down(ctx context.Context) (Result, error) {
	return r.run(ctx, "down", r.migrator.Rollback)
}

// Status lists every discovered migration and whether it has been applied.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migration tables: %w", err)
	}
	applied, err := r.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(applied))
	for _, m := range applied {
		out = append(out, Status{Name: m.Name, Comment: m.Comment, GroupID: m.GroupID, Applied: m.IsApplied()})
	}
	return out, nil
}

func (r *Runner) run(ctx context.Context, direction string, step func(context.Context, ...migrate.MigrationOption) (*migrate.MigrationGroup, error)) (Result, error) {
	if err := r.migrator.Init(ctx); err != nil {
		return Result{}, fmt.Errorf("init migration tables: %w", err)
	}
	if err := r.migrator.Lock(ctx); err != nil {
		return Result{}, fmt.Errorf("lock migrations: %w", err)
	}
	defer func() {
		if err := r.migrator.Unlock(ctx); err != nil {
			r.logger.Warn("migrations.unlock_failed", "error", err)
		}
	}()

	group, err := step(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("migrate %s: %w", direction, err)
	}
	if group == nil || group.IsZero() {
		r.logger.Info("migrations.noop", "direction", direction)
		return Result{}, nil
	}

	result := Result{GroupID: group.ID}
	for _, m := range group.Migrations {
		result.Names = append(result.Names, migrationID(m.Name, m.Comment))
	}
	r.logger.Info("migrations.applied", "direction", direction, "group", group.ID, "count", len(result.Names))
	return result, nil
}
