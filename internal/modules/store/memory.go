package store

import (
	"context"
	"sort"
	"sync"

	"github.com/georgemunganga/hospo-ops/internal/apperr"
)

// MemoryRepository keeps stores in process memory. It backs local development
// without Postgres and the package tests, and enforces the same unique name rule.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	stores   map[int]Store
	onDelete []func(storeID int)
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{stores: make(map[int]Store)}
}

// OnDelete registers fn to run after a store is removed, mirroring ON DELETE CASCADE.
func (m *MemoryRepository) OnDelete(fn func(storeID int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDelete = append(m.onDelete, fn)
}

func (m *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Store, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int, 0, len(m.stores))
	for id := range m.stores {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var out []*Store
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		s := m.stores[ids[i]]
		out = append(out, &s)
	}
	return out, int64(len(ids)), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id int) (*Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stores[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &s, nil
}

func (m *MemoryRepository) Exists(_ context.Context, id int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.stores[id]
	return ok, nil
}

func (m *MemoryRepository) NameTaken(_ context.Context, name string, excludeID int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nameTakenLocked(name, excludeID), nil
}

func (m *MemoryRepository) Create(_ context.Context, s *Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTakenLocked(s.Name, 0) {
		return ErrDuplicateName
	}
	m.nextID++
	s.ID = m.nextID
	m.stores[s.ID] = *s
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, s *Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[s.ID]; !ok {
		return apperr.ErrNotFound
	}
	if m.nameTakenLocked(s.Name, s.ID) {
		return ErrDuplicateName
	}
	m.stores[s.ID] = *s
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	if _, ok := m.stores[id]; !ok {
		m.mu.Unlock()
		return apperr.ErrNotFound
	}
	delete(m.stores, id)
	hooks := append([]func(int){}, m.onDelete...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
	return nil
}

func (m *MemoryRepository) nameTakenLocked(name string, excludeID int) bool {
	for id, s := range m.stores {
		if id != excludeID && s.Name == name {
			return true
		}
	}
	return false
}
