package languages

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps languages keyed by normalized code.
type MemoryRepository struct {
	mu        sync.RWMutex
	languages map[string]*Language
	failWith  error
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		languages: make(map[string]*Language),
	}
}

// FailWith makes every subsequent read return err. Passing nil restores
// normal behaviour.
func (m *MemoryRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MemoryRepository) List(context.Context) ([]*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]*Language, 0, len(m.languages))
	for _, lang := range m.languages {
		out = append(out, cloneLanguage(lang))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (m *MemoryRepository) GetByCode(_ context.Context, code string) (*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failWith != nil {
		return nil, m.failWith
	}
	lang, ok := m.languages[NormalizeCode(code)]
	if !ok {
		return nil, &NotFoundError{Resource: "language", Key: code}
	}
	return cloneLanguage(lang), nil
}

func (m *MemoryRepository) Create(_ context.Context, record *Language) (*Language, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneLanguage(record)
	m.languages[NormalizeCode(copied.Code)] = copied
	return cloneLanguage(copied), nil
}
