package employee

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/georgemunganga/hospo-ops/internal/apperr"
)

// MemoryRepository keeps employees in process memory with the same
// (store_id, full_name) uniqueness and store reference rules as the schema.
type MemoryRepository struct {
	mu        sync.RWMutex
	nextID    int
	employees map[int]Employee
	stores    StoreChecker
}

// NewMemoryRepository returns an empty repository. stores, when non-nil,
// enforces the store reference on writes.
func NewMemoryRepository(stores StoreChecker) *MemoryRepository {
	return &MemoryRepository{employees: make(map[int]Employee), stores: stores}
}

// DeleteByStore removes every employee of storeID.
func (m *MemoryRepository) DeleteByStore(storeID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.employees {
		if e.StoreID == storeID {
			delete(m.employees, id)
		}
	}
}

func (m *MemoryRepository) List(_ context.Context, f Filter, limit, offset int) ([]*Employee, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []Employee
	for _, e := range m.employees {
		if f.StoreID != nil && e.StoreID != *f.StoreID {
			continue
		}
		if f.Active != nil && e.Active != *f.Active {
			continue
		}
		if strings.TrimSpace(f.Name) != "" && !strings.Contains(e.FullName, f.Name) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].FullName != matched[j].FullName {
			return matched[i].FullName < matched[j].FullName
		}
		return matched[i].ID < matched[j].ID
	})
	var out []*Employee
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		e := matched[i]
		out = append(out, &e)
	}
	return out, int64(len(matched)), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id int) (*Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &e, nil
}

func (m *MemoryRepository) NameTaken(_ context.Context, storeID int, fullName string, excludeID int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nameTakenLocked(storeID, fullName, excludeID), nil
}

func (m *MemoryRepository) Create(ctx context.Context, e *Employee) error {
	if err := m.checkStore(ctx, e.StoreID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTakenLocked(e.StoreID, e.FullName, 0) {
		return ErrDuplicateName
	}
	m.nextID++
	e.ID = m.nextID
	m.employees[e.ID] = *e
	return nil
}

func (m *MemoryRepository) Update(ctx context.Context, e *Employee) error {
	if err := m.checkStore(ctx, e.StoreID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[e.ID]; !ok {
		return apperr.ErrNotFound
	}
	if m.nameTakenLocked(e.StoreID, e.FullName, e.ID) {
		return ErrDuplicateName
	}
	m.employees[e.ID] = *e
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *MemoryRepository) checkStore(ctx context.Context, storeID int) error {
	if m.stores == nil {
		return nil
	}
	ok, err := m.stores.Exists(ctx, storeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownStore
	}
	return nil
}

func (m *MemoryRepository) nameTakenLocked(storeID int, fullName string, excludeID int) bool {
	for id, e := range m.employees {
		if id != excludeID && e.StoreID == storeID && e.FullName == fullName {
			return true
		}
	}
	return false
}
