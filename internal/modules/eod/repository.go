package eod

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
)

var (
	// ErrDuplicateDate is returned when (store_id, biz_date) already exists.
	ErrDuplicateDate = errors.New("eod report already exists for this store and date")
	// ErrUnknownStore is returned when store_id references no store.
	ErrUnknownStore = errors.New("store not found")
)

// Repository defines EOD report storage. Lookups that match nothing return apperr.ErrNotFound.
type Repository interface {
	List(ctx context.Context, f Filter, limit, offset int) ([]*Report, int64, error)
	GetByID(ctx context.Context, id int64) (*Report, error)
	GetByStoreAndDate(ctx context.Context, storeID int, bizDate civil.Date) (*Report, error)
	DateTaken(ctx context.Context, storeID int, bizDate civil.Date, excludeID int64) (bool, error)
	Create(ctx context.Context, r *Report) error
	// Update replaces store, date, sales and tickets. CreatedAt is never written.
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id int64) error
}

// StoreChecker answers whether a store id exists.
type StoreChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}
