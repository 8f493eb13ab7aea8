package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Profile]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: NewProfileRepository(db),
	}
}

func (r *BunRepository) GetByIdentityKey(ctx context.Context, key string) (*Profile, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunRepository) Upsert(ctx context.Context, record *Profile) (*Profile, error) {
	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (identity_key) DO UPDATE").
		Set("preferred_language_code = EXCLUDED.preferred_language_code").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile repository error: %w", err)
	}
	return r.GetByIdentityKey(ctx, record.IdentityKey)
}

func (r *BunRepository) CreateIfAbsent(ctx context.Context, record *Profile) (*Profile, bool, error) {
	res, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (identity_key) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("profile repository error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("profile repository error: %w", err)
	}
	stored, err := r.GetByIdentityKey(ctx, record.IdentityKey)
	if err != nil {
		return nil, false, err
	}
	return stored, affected > 0, nil
}

func mapRepositoryError(err error, key string) error {
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("profile repository error: %w", err)
}
