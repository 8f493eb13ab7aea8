package advisory

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository reads and writes content for either kind.
type Repository interface {
	ListByLanguage(ctx context.Context, kind Kind, languageCode string) ([]*Content, error)
	Get(ctx context.Context, kind Kind, topicKey, languageCode string) (*Content, error)
	Categories(ctx context.Context, kind Kind) ([]string, error)
	Upsert(ctx context.Context, kind Kind, record *Content) (*Content, error)
}

// NewContentRepository returns the generic repository. The kind's table is
// chosen per query with ModelTableExpr.
func NewContentRepository(db *bun.DB) repository.Repository[*Content] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Content]{
		NewRecord: func() *Content { return &Content{} },
		GetID: func(c *Content) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Content, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "topic_key"
		},
		GetIdentifierValue: func(c *Content) string {
			return c.TopicKey
		},
	})
}
