package prices

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository reads and records market prices.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]*MarketPrice, error)
	DistinctKeys(ctx context.Context, column string) ([]string, error)
	Upsert(ctx context.Context, record *MarketPrice) (*MarketPrice, error)
}

func NewMarketPriceRepository(db *bun.DB) repository.Repository[*MarketPrice] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*MarketPrice]{
		NewRecord: func() *MarketPrice { return &MarketPrice{} },
		GetID: func(p *MarketPrice) uuid.UUID {
			return p.ID
		},
		SetID: func(p *MarketPrice, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(p *MarketPrice) string {
			return p.ID.String()
		},
	})
}
