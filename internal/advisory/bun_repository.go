package advisory

import (
	"context"
	"fmt"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/agriconnect/agriconnect/internal/util"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Content]
}

var _ Repository = (*BunRepository)(nil)

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: NewContentRepository(db),
	}
}

func fromKind(q *bun.SelectQuery, kind Kind) *bun.SelectQuery {
	return q.ModelTableExpr("? AS ac", bun.Ident(kind.Table()))
}

func (r *BunRepository) ListByLanguage(ctx context.Context, kind Kind, languageCode string) ([]*Content, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return fromKind(q, kind).
				Where("ac.language_code = ?", languageCode).
				OrderExpr("ac.title ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", kind.Table(), err)
	}
	return records, nil
}

func (r *BunRepository) Get(ctx context.Context, kind Kind, topicKey, languageCode string) (*Content, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return fromKind(q, kind).
				Where("ac.topic_key = ?", topicKey).
				Where("ac.language_code = ?", languageCode).
				Limit(1)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", kind.Table(), err)
	}
	if len(records) == 0 {
		return nil, &domain.NotFoundError{Resource: kind.Table(), Key: topicKey + "@" + languageCode}
	}
	return records[0], nil
}

func (r *BunRepository) Categories(ctx context.Context, kind Kind) ([]string, error) {
	var keys []string
	err := fromKind(r.db.NewSelect().Model((*Content)(nil)), kind).
		Distinct().
		ColumnExpr("ac.category_key").
		Where("ac.category_key IS NOT NULL").
		OrderExpr("ac.category_key ASC").
		Scan(ctx, &keys)
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", kind.Table(), err)
	}
	return util.DistinctStrings(keys), nil
}

func (r *BunRepository) Upsert(ctx context.Context, kind Kind, record *Content) (*Content, error) {
	_, err := r.db.NewInsert().
		Model(record).
		ModelTableExpr("?", bun.Ident(kind.Table())).
		On("CONFLICT (topic_key, language_code) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("body_text = EXCLUDED.body_text").
		Set("category_key = EXCLUDED.category_key").
		Set("image_url = EXCLUDED.image_url").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", kind.Table(), err)
	}
	return r.Get(ctx, kind, record.TopicKey, record.LanguageCode)
}
