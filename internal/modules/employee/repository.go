package employee

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateName is returned when (store_id, full_name) already exists.
	ErrDuplicateName = errors.New("employee already exists in this store")
	// ErrUnknownStore is returned when store_id references no store.
	ErrUnknownStore = errors.New("store not found")
)

// Repository defines employee data storage. Lookups of a missing id return apperr.ErrNotFound.
type Repository interface {
	List(ctx context.Context, f Filter, limit, offset int) ([]*Employee, int64, error)
	GetByID(ctx context.Context, id int) (*Employee, error)
	NameTaken(ctx context.Context, storeID int, fullName string, excludeID int) (bool, error)
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int) error
}

// StoreChecker answers whether a store id exists. store.Repository satisfies it.
type StoreChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}
