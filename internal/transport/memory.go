package transport

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/google/uuid"
)

// MemoryRequestRepository keeps transport requests in process memory.
type MemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*Request
}

var _ RequestRepository = (*MemoryRequestRepository)(nil)

func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{requests: make(map[uuid.UUID]*Request)}
}

func (m *MemoryRequestRepository) Create(_ context.Context, record *Request) (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneRequest(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.requests[copied.ID] = copied
	return cloneRequest(copied), nil
}

func (m *MemoryRequestRepository) Get(_ context.Context, id uuid.UUID) (*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.requests[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "transport request", Key: id.String()}
	}
	return cloneRequest(record), nil
}

func (m *MemoryRequestRepository) List(_ context.Context, filter RequestFilter) ([]*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Request, 0, len(m.requests))
	for _, record := range m.requests {
		if filter.FarmerKey != "" && record.FarmerKey != filter.FarmerKey {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		out = append(out, cloneRequest(record))
	}
	slices.SortFunc(out, func(a, b *Request) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *MemoryRequestRepository) UpdateStatus(_ context.Context, record *Request) (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.requests[record.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "transport request", Key: record.ID.String()}
	}
	existing.Status = record.Status
	existing.UpdatedAt = record.UpdatedAt
	return cloneRequest(existing), nil
}

func (m *MemoryRequestRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[id]; !ok {
		return &domain.NotFoundError{Resource: "transport request", Key: id.String()}
	}
	delete(m.requests, id)
	return nil
}

// MemoryTransporterRepository keeps transporters in process memory.
type MemoryTransporterRepository struct {
	mu           sync.RWMutex
	transporters []*Transporter
}

var _ TransporterRepository = (*MemoryTransporterRepository)(nil)

func NewMemoryTransporterRepository(seed ...*Transporter) *MemoryTransporterRepository {
	repo := &MemoryTransporterRepository{}
	for _, record := range seed {
		repo.transporters = append(repo.transporters, cloneTransporter(record))
	}
	return repo
}

func (m *MemoryTransporterRepository) List(context.Context) ([]*Transporter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Transporter, 0, len(m.transporters))
	for _, record := range m.transporters {
		out = append(out, cloneTransporter(record))
	}
	slices.SortStableFunc(out, func(a, b *Transporter) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (m *MemoryTransporterRepository) Create(_ context.Context, record *Transporter) (*Transporter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneTransporter(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.transporters = append(m.transporters, copied)
	return cloneTransporter(copied), nil
}
