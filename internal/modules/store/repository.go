package store

import (
	"context"
	"errors"
)

// ErrDuplicateName is returned by repositories when the unique name constraint fires.
var ErrDuplicateName = errors.New("store name already exists")

// Repository defines store data storage. Lookups of a missing id return apperr.ErrNotFound.
type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Store, int64, error)
	GetByID(ctx context.Context, id int) (*Store, error)
	Exists(ctx context.Context, id int) (bool, error)
	NameTaken(ctx context.Context, name string, excludeID int) (bool, error)
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id int) error
}
