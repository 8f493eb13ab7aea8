package feedback

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps feedback in insertion order.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []*Entry
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Create(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneEntry(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.entries = append(m.entries, copied)
	return cloneEntry(copied), nil
}

func (m *MemoryRepository) List(_ context.Context, userKey string) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		if userKey != "" && (entry.UserKey == nil || *entry.UserKey != userKey) {
			continue
		}
		out = append(out, cloneEntry(entry))
	}
	slices.SortStableFunc(out, func(a, b *Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
