package prices

import (
	"context"
	"slices"
	"sync"

	"github.com/agriconnect/agriconnect/internal/util"
	"github.com/google/uuid"
)

// MemoryRepository keeps market prices keyed by id.
type MemoryRepository struct {
	mu     sync.RWMutex
	prices map[uuid.UUID]*MarketPrice
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{prices: make(map[uuid.UUID]*MarketPrice)}
}

func (m *MemoryRepository) List(_ context.Context, filter Filter) ([]*MarketPrice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*MarketPrice, 0, len(m.prices))
	for _, record := range m.prices {
		if filter.Crop != "" && record.CropNameKey != filter.Crop {
			continue
		}
		if filter.Market != "" && record.MarketNameKey != filter.Market {
			continue
		}
		copied := *record
		out = append(out, &copied)
	}
	slices.SortFunc(out, func(a, b *MarketPrice) int {
		return b.PriceDate.Compare(a.PriceDate)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MemoryRepository) DistinctKeys(_ context.Context, column string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.prices))
	for _, record := range m.prices {
		switch column {
		case columnCrop:
			keys = append(keys, record.CropNameKey)
		case columnMarket:
			keys = append(keys, record.MarketNameKey)
		}
	}
	slices.Sort(keys)
	return util.DistinctStrings(keys), nil
}

func (m *MemoryRepository) Upsert(_ context.Context, record *MarketPrice) (*MarketPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.prices[record.ID]; ok {
		existing.Price = record.Price
		existing.Unit = record.Unit
		copied := *existing
		return &copied, nil
	}
	copied := *record
	m.prices[copied.ID] = &copied
	result := copied
	return &result, nil
}
