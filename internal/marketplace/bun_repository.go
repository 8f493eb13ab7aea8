package marketplace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agriconnect/agriconnect/internal/domain"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	repo repository.Repository[*Listing]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewListingRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, record *Listing) (*Listing, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunRepository) Get(ctx context.Context, id uuid.UUID) (*Listing, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context, filter ListFilter) ([]*Listing, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.SellerKey != "" {
				q = q.Where("?TableAlias.seller_key = ?", filter.SellerKey)
			}
			if filter.Status != "" {
				q = q.Where("?TableAlias.status = ?", filter.Status)
			}
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("listing repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Listing) (*Listing, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"crop_type",
			"quantity",
			"price",
			"description",
			"status",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Listing{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Resource: "listing", Key: key}
	}
	return fmt.Errorf("listing repository error: %w", err)
}
