package advisory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/agriconnect/agriconnect/internal/util"
)

type contentKey struct {
	kind     Kind
	topic    string
	language string
}

// MemoryRepository keeps both kinds of content in one map.
type MemoryRepository struct {
	mu       sync.RWMutex
	contents map[contentKey]*Content
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{contents: make(map[contentKey]*Content)}
}

func (m *MemoryRepository) ListByLanguage(_ context.Context, kind Kind, languageCode string) ([]*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Content
	for key, record := range m.contents {
		if key.kind == kind && key.language == languageCode {
			out = append(out, cloneContent(record))
		}
	}
	slices.SortFunc(out, func(a, b *Content) int {
		return strings.Compare(a.Title, b.Title)
	})
	return out, nil
}

func (m *MemoryRepository) Get(_ context.Context, kind Kind, topicKey, languageCode string) (*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.contents[contentKey{kind, topicKey, languageCode}]
	if !ok {
		return nil, &domain.NotFoundError{Resource: kind.Table(), Key: topicKey + "@" + languageCode}
	}
	return cloneContent(record), nil
}

func (m *MemoryRepository) Categories(_ context.Context, kind Kind) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key, record := range m.contents {
		if key.kind == kind && record.CategoryKey != nil {
			keys = append(keys, *record.CategoryKey)
		}
	}
	slices.Sort(keys)
	return util.DistinctStrings(keys), nil
}

func (m *MemoryRepository) Upsert(_ context.Context, kind Kind, record *Content) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := contentKey{kind, record.TopicKey, record.LanguageCode}
	copied := cloneContent(record)
	if existing, ok := m.contents[key]; ok {
		copied.ID = existing.ID
		copied.CreatedAt = existing.CreatedAt
	}
	m.contents[key] = copied
	return cloneContent(copied), nil
}
