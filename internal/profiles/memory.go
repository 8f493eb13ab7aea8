package profiles

import (
	"context"
	"sync"
)

// MemoryRepository keeps profiles keyed by identity key.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	failWith error
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles: make(map[string]*Profile),
	}
}

// FailWith makes every call return err until reset with nil.
func (m *MemoryRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Len returns the number of stored profiles.
func (m *MemoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

func (m *MemoryRepository) GetByIdentityKey(_ context.Context, key string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failWith != nil {
		return nil, m.failWith
	}
	record, ok := m.profiles[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return cloneProfile(record), nil
}

func (m *MemoryRepository) Upsert(_ context.Context, record *Profile) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}
	if existing, ok := m.profiles[record.IdentityKey]; ok {
		existing.PreferredLanguageCode = record.PreferredLanguageCode
		existing.UpdatedAt = record.UpdatedAt
		return cloneProfile(existing), nil
	}
	copied := cloneProfile(record)
	m.profiles[copied.IdentityKey] = copied
	return cloneProfile(copied), nil
}

func (m *MemoryRepository) CreateIfAbsent(_ context.Context, record *Profile) (*Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, false, m.failWith
	}
	if existing, ok := m.profiles[record.IdentityKey]; ok {
		return cloneProfile(existing), false, nil
	}
	copied := cloneProfile(record)
	m.profiles[copied.IdentityKey] = copied
	return cloneProfile(copied), true, nil
}
