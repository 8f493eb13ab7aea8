package marketplace

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists listings.
type Repository interface {
	Create(ctx context.Context, record *Listing) (*Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*Listing, error)
	List(ctx context.Context, filter ListFilter) ([]*Listing, error)
	Update(ctx context.Context, record *Listing) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewListingRepository(db *bun.DB) repository.Repository[*Listing] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Listing]{
		NewRecord: func() *Listing { return &Listing{} },
		GetID: func(l *Listing) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Listing, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(l *Listing) string {
			return l.ID.String()
		},
	})
}
