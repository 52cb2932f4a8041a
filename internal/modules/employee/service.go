package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/georgemunganga/hospo-ops/internal/apperr"
	"github.com/georgemunganga/hospo-ops/internal/validation"
)

const (
	msgStoreNotFound   = "Store not found."
	msgDuplicateOnAdd  = "Employee already exists in this store."
	msgDuplicateOnEdit = "Another employee with same name exists in this store."
	msgHireDateFormat  = "HireDate must be yyyy-MM-dd."
)

// Service defines employee business logic.
type Service interface {
	List(ctx context.Context, f Filter, page, pageSize int) ([]*Employee, int64, error)
	Get(ctx context.Context, id int) (*Employee, error)
	Create(ctx context.Context, req Request) (*Employee, error)
	Update(ctx context.Context, id int, req Request) (*Employee, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	stores   StoreChecker
	validate *validation.Validator
}

// NewService creates a new employee service. stores resolves the storeId reference.
func NewService(repo Repository, stores StoreChecker) Service {
	v := validation.New().Message("hireDate", "isodate", msgHireDateFormat)
	return &service{repo: repo, stores: stores, validate: v}
}

func (s *service) List(ctx context.Context, f Filter, page, pageSize int) ([]*Employee, int64, error) {
	return s.repo.List(ctx, f, pageSize, (page-1)*pageSize)
}

func (s *service) Get(ctx context.Context, id int) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req Request) (*Employee, error) {
	req = normalize(req)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	e, err := s.check(ctx, req, 0, msgDuplicateOnAdd)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, mapWriteErr(err, msgDuplicateOnAdd)
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, id int, req Request) (*Employee, error) {
	req = normalize(req)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	e, err := s.check(ctx, req, id, msgDuplicateOnEdit)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, mapWriteErr(err, msgDuplicateOnEdit)
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// check runs the store reference and uniqueness stages on a validated request
// and returns the employee to write.
func (s *service) check(ctx context.Context, req Request, excludeID int, dupMsg string) (*Employee, error) {
	ok, err := s.stores.Exists(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validation.Field("storeId", msgStoreNotFound)
	}
	taken, err := s.repo.NameTaken(ctx, req.StoreID, req.FullName, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(dupMsg)
	}

	e := &Employee{
		StoreID:  req.StoreID,
		FullName: req.FullName,
		Role:     req.Role,
		Active:   true,
	}
	if req.Active != nil {
		e.Active = *req.Active
	}
	if req.HireDate != nil {
		d, err := validation.ParseDate(*req.HireDate)
		if err != nil {
			return nil, validation.Field("hireDate", msgHireDateFormat)
		}
		e.HireDate = &d
	}
	return e, nil
}

// normalize treats a blank hireDate as absent.
func normalize(req Request) Request {
	if req.HireDate != nil {
		v := strings.TrimSpace(*req.HireDate)
		if v == "" {
			req.HireDate = nil
		} else {
			req.HireDate = &v
		}
	}
	return req
}

func mapWriteErr(err error, dupMsg string) error {
	switch {
	case errors.Is(err, ErrDuplicateName):
		return apperr.Conflict(dupMsg)
	case errors.Is(err, ErrUnknownStore):
		return validation.Field("storeId", msgStoreNotFound)
	}
	return err
}
