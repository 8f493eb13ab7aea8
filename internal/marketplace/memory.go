package marketplace

import (
	"context"
	"slices"
	"sync"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/google/uuid"
)

// MemoryRepository keeps listings in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]*Listing
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{listings: make(map[uuid.UUID]*Listing)}
}

func (m *MemoryRepository) Create(_ context.Context, record *Listing) (*Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneListing(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.listings[copied.ID] = copied
	return cloneListing(copied), nil
}

func (m *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.listings[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "listing", Key: id.String()}
	}
	return cloneListing(record), nil
}

func (m *MemoryRepository) List(_ context.Context, filter ListFilter) ([]*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Listing, 0, len(m.listings))
	for _, record := range m.listings {
		if filter.SellerKey != "" && record.SellerKey != filter.SellerKey {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		out = append(out, cloneListing(record))
	}
	slices.SortFunc(out, func(a, b *Listing) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) Update(_ context.Context, record *Listing) (*Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[record.ID]; !ok {
		return nil, &domain.NotFoundError{Resource: "listing", Key: record.ID.String()}
	}
	copied := cloneListing(record)
	m.listings[copied.ID] = copied
	return cloneListing(copied), nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[id]; !ok {
		return &domain.NotFoundError{Resource: "listing", Key: id.String()}
	}
	delete(m.listings, id)
	return nil
}
