package profiles

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists profiles keyed by identity key.
type Repository interface {
	GetByIdentityKey(ctx context.Context, key string) (*Profile, error)
	// Upsert inserts record or, when the identity key exists, overwrites its
	// preferred language code.
	Upsert(ctx context.Context, record *Profile) (*Profile, error)
	// CreateIfAbsent inserts record only when no row exists for its identity
	// key. It returns the stored row and whether this call created it.
	CreateIfAbsent(ctx context.Context, record *Profile) (*Profile, bool, error)
}

func NewProfileRepository(db *bun.DB) repository.Repository[*Profile] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Profile]{
		NewRecord: func() *Profile { return &Profile{} },
		GetID: func(p *Profile) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Profile, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "identity_key"
		},
		GetIdentifierValue: func(p *Profile) string {
			return p.IdentityKey
		},
	})
}
