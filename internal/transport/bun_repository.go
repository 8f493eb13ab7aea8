package transport

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

type BunRequestRepository struct {
	repo repository.Repository[*Request]
}

var _ RequestRepository = (*BunRequestRepository)(nil)

func NewBunRequestRepository(db *bun.DB) *BunRequestRepository {
	return &BunRequestRepository{repo: NewRequestRepository(db)}
}

func (r *BunRequestRepository) Create(ctx context.Context, record *Request) (*Request, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunRequestRepository) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "transport request", id.String())
	}
	return record, nil
}

func (r *BunRequestRepository) List(ctx context.Context, filter RequestFilter) ([]*Request, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.FarmerKey != "" {
				q = q.Where("?TableAlias.farmer_key = ?", filter.FarmerKey)
			}
			if filter.Status != "" {
				q = q.Where("?TableAlias.status = ?", filter.Status)
			}
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("transport request repository error: %w", err)
	}
	return records, nil
}

func (r *BunRequestRepository) UpdateStatus(ctx context.Context, record *Request) (*Request, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("status", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "transport request", record.ID.String())
	}
	return updated, nil
}

func (r *BunRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Request{ID: id}); err != nil {
		return mapRepositoryError(err, "transport request", id.String())
	}
	return nil
}

type BunTransporterRepository struct {
	repo repository.Repository[*Transporter]
}

var _ TransporterRepository = (*BunTransporterRepository)(nil)

func NewBunTransporterRepository(db *bun.DB) *BunTransporterRepository {
	return &BunTransporterRepository{repo: NewTransporterRepository(db)}
}

func (r *BunTransporterRepository) List(ctx context.Context) ([]*Transporter, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.name ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("transporter repository error: %w", err)
	}
	return records, nil
}

func (r *BunTransporterRepository) Create(ctx context.Context, record *Transporter) (*Transporter, error) {
	return r.repo.Create(ctx, record)
}

func mapRepositoryError(err error, resource, key string) error {
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
