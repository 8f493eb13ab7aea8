package prices

import (
	"context"
	"fmt"

	"github.com/agriconnect/agriconnect/internal/util"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*MarketPrice]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: NewMarketPriceRepository(db),
	}
}

func (r *BunRepository) List(ctx context.Context, filter Filter) ([]*MarketPrice, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.Crop != "" {
				q = q.Where("?TableAlias.crop_name_key = ?", filter.Crop)
			}
			if filter.Market != "" {
				q = q.Where("?TableAlias.market_name_key = ?", filter.Market)
			}
			if filter.Limit > 0 {
				q = q.Limit(filter.Limit)
			}
			return q.OrderExpr("?TableAlias.price_date DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("market price repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) DistinctKeys(ctx context.Context, column string) ([]string, error) {
	var keys []string
	err := r.db.NewSelect().
		Model((*MarketPrice)(nil)).
		Distinct().
		Column(column).
		Order(column).
		Scan(ctx, &keys)
	if err != nil {
		return nil, fmt.Errorf("market price repository error: %w", err)
	}
	return util.DistinctStrings(keys), nil
}

func (r *BunRepository) Upsert(ctx context.Context, record *MarketPrice) (*MarketPrice, error) {
	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("price = EXCLUDED.price").
		Set("unit = EXCLUDED.unit").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("market price repository error: %w", err)
	}
	return record, nil
}
