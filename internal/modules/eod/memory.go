package eod

import (
	"context"
	"sort"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/georgemunganga/hospo-ops/internal/apperr"
)

// MemoryRepository keeps reports in process memory with the same
// (store_id, biz_date) uniqueness and store reference rules as the schema.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	reports map[int64]Report
	stores  StoreChecker
}

// NewMemoryRepository returns an empty repository. stores, when non-nil,
// enforces the store reference on writes.
func NewMemoryRepository(stores StoreChecker) *MemoryRepository {
	return &MemoryRepository{reports: make(map[int64]Report), stores: stores}
}

// DeleteByStore removes every report of storeID.
func (m *MemoryRepository) DeleteByStore(storeID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.reports {
		if r.StoreID == storeID {
			delete(m.reports, id)
		}
	}
}

func (m *MemoryRepository) List(_ context.Context, f Filter, limit, offset int) ([]*Report, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []Report
	for _, r := range m.reports {
		if f.matches(r) {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.BizDate != b.BizDate {
			return a.BizDate.After(b.BizDate)
		}
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		return a.ID < b.ID
	})
	var out []*Report
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		r := matched[i]
		out = append(out, &r)
	}
	return out, int64(len(matched)), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id int64) (*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &r, nil
}

func (m *MemoryRepository) GetByStoreAndDate(_ context.Context, storeID int, bizDate civil.Date) (*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reports {
		if r.StoreID == storeID && r.BizDate == bizDate {
			return &r, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *MemoryRepository) DateTaken(_ context.Context, storeID int, bizDate civil.Date, excludeID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dateTakenLocked(storeID, bizDate, excludeID), nil
}

func (m *MemoryRepository) Create(ctx context.Context, r *Report) error {
	if err := m.checkStore(ctx, r.StoreID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dateTakenLocked(r.StoreID, r.BizDate, 0) {
		return ErrDuplicateDate
	}
	m.nextID++
	r.ID = m.nextID
	m.reports[r.ID] = *r
	return nil
}

func (m *MemoryRepository) Update(ctx context.Context, r *Report) error {
	if err := m.checkStore(ctx, r.StoreID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.reports[r.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	if m.dateTakenLocked(r.StoreID, r.BizDate, r.ID) {
		return ErrDuplicateDate
	}
	cur.StoreID, cur.BizDate, cur.NetSales, cur.Tickets = r.StoreID, r.BizDate, r.NetSales, r.Tickets
	m.reports[r.ID] = cur
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.reports, id)
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

func (m *MemoryRepository) dateTakenLocked(storeID int, bizDate civil.Date, excludeID int64) bool {
	for id, r := range m.reports {
		if id != excludeID && r.StoreID == storeID && r.BizDate == bizDate {
			return true
		}
	}
	return false
}
