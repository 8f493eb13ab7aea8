package feedback

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	repo repository.Repository[*Entry]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{repo: NewEntryRepository(db)}
}

func (r *BunRepository) Create(ctx context.Context, record *Entry) (*Entry, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunRepository) List(ctx context.Context, userKey string) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if userKey != "" {
				q = q.Where("?TableAlias.user_key = ?", userKey)
			}
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("feedback repository error: %w", err)
	}
	return records, nil
}
