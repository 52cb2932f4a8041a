package eod

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/georgemunganga/hospo-ops/internal/apperr"
	"github.com/georgemunganga/hospo-ops/internal/validation"
)

const (
	msgStoreNotFound = "Store not found."
	msgDuplicate     = "EOD report already exists for this store and date."
	msgBizDate       = "BizDate must be in yyyy-MM-dd format."
)

// Service defines EOD report business logic.
type Service interface {
	List(ctx context.Context, f Filter, page, pageSize int) ([]*Report, int64, error)
	Get(ctx context.Context, id int64) (*Report, error)
	GetByStoreAndDate(ctx context.Context, storeID int, bizDate civil.Date) (*Report, error)
	Create(ctx context.Context, req Request) (*Report, error)
	Update(ctx context.Context, id int64, req Request) (*Report, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	stores   StoreChecker
	validate *validation.Validator
	now      func() time.Time
}

// NewService creates a new EOD service. stores resolves the storeId reference.
func NewService(repo Repository, stores StoreChecker) Service {
	v := validation.New().
		Message("storeId", "gt", "StoreId must be greater than 0.").
		Message("bizDate", "required", msgBizDate).
		Message("bizDate", "isodate", msgBizDate).
		Message("netSales", "money", "NetSales cannot be negative.").
		Message("tickets", "gte", "Tickets cannot be negative.")
	return &service{repo: repo, stores: stores, validate: v, now: time.Now}
}

func (s *service) List(ctx context.Context, f Filter, page, pageSize int) ([]*Report, int64, error) {
	return s.repo.List(ctx, f, pageSize, (page-1)*pageSize)
}

func (s *service) Get(ctx context.Context, id int64) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByStoreAndDate(ctx context.Context, storeID int, bizDate civil.Date) (*Report, error) {
	return s.repo.GetByStoreAndDate(ctx, storeID, bizDate)
}

func (s *service) Create(ctx context.Context, req Request) (*Report, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	rep, err := s.check(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	rep.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, mapWriteErr(err)
	}
	return rep, nil
}

func (s *service) Update(ctx context.Context, id int64, req Request) (*Report, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rep, err := s.check(ctx, req, id)
	if err != nil {
		return nil, err
	}
	rep.ID = id
	rep.CreatedAt = cur.CreatedAt
	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, mapWriteErr(err)
	}
	return rep, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// check runs the store reference and uniqueness stages on a validated request.
func (s *service) check(ctx context.Context, req Request, excludeID int64) (*Report, error) {
	bizDate, err := validation.ParseDate(req.BizDate)
	if err != nil {
		return nil, validation.Field("bizDate", msgBizDate)
	}
	ok, err := s.stores.Exists(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validation.Field("storeId", msgStoreNotFound)
	}
	taken, err := s.repo.DateTaken(ctx, req.StoreID, bizDate, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(msgDuplicate)
	}
	return &Report{
		StoreID:  req.StoreID,
		BizDate:  bizDate,
		NetSales: req.NetSales.Round(2),
		Tickets:  req.Tickets,
	}, nil
}

func mapWriteErr(err error) error {
	switch {
	case errors.Is(err, ErrDuplicateDate):
		return apperr.Conflict(msgDuplicate)
	case errors.Is(err, ErrUnknownStore):
		return validation.Field("storeId", msgStoreNotFound)
	}
	return err
}
