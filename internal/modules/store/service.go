package store

import (
	"context"
	"errors"

	"github.com/georgemunganga/hospo-ops/internal/apperr"
	"github.com/georgemunganga/hospo-ops/internal/validation"
)

const msgDuplicateName = "Store name already exists."

// Service defines store business logic.
type Service interface {
	List(ctx context.Context, page, pageSize int) ([]*Store, int64, error)
	Get(ctx context.Context, id int) (*Store, error)
	Create(ctx context.Context, req Request) (*Store, error)
	Update(ctx context.Context, id int, req Request) (*Store, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	validate *validation.Validator
}

// NewService creates a new store service.
func NewService(repo Repository) Service {
	return &service{repo: repo, validate: validation.New()}
}

func (s *service) List(ctx context.Context, page, pageSize int) ([]*Store, int64, error) {
	return s.repo.List(ctx, pageSize, (page-1)*pageSize)
}

func (s *service) Get(ctx context.Context, id int) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req Request) (*Store, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	taken, err := s.repo.NameTaken(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(msgDuplicateName)
	}
	st := &Store{Name: req.Name}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, mapWriteErr(err)
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, id int, req Request) (*Store, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.NameTaken(ctx, req.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(msgDuplicateName)
	}
	st.Name = req.Name
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, mapWriteErr(err)
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// mapWriteErr covers the race where a concurrent writer takes the name
// between the pre-check and the write.
func mapWriteErr(err error) error {
	if errors.Is(err, ErrDuplicateName) {
		return apperr.Conflict(msgDuplicateName)
	}
	return err
}
