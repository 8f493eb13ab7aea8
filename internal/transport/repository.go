package transport

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RequestRepository persists transport requests.
type RequestRepository interface {
	Create(ctx context.Context, record *Request) (*Request, error)
	Get(ctx context.Context, id uuid.UUID) (*Request, error)
	List(ctx context.Context, filter RequestFilter) ([]*Request, error)
	UpdateStatus(ctx context.Context, record *Request) (*Request, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransporterRepository lists carriers. Rows are maintained by operators.
type TransporterRepository interface {
	List(ctx context.Context) ([]*Transporter, error)
	Create(ctx context.Context, record *Transporter) (*Transporter, error)
}

func NewRequestRepository(db *bun.DB) repository.Repository[*Request] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Request]{
		NewRecord: func() *Request { return &Request{} },
		GetID: func(r *Request) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Request, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Request) string {
			return r.ID.String()
		},
	})
}

func NewTransporterRepository(db *bun.DB) repository.Repository[*Transporter] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Transporter]{
		NewRecord: func() *Transporter { return &Transporter{} },
		GetID: func(t *Transporter) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Transporter, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(t *Transporter) string {
			return t.Name
		},
	})
}
