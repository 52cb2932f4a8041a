package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/hospo-ops/internal/apperr"
	"github.com/georgemunganga/hospo-ops/internal/db"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(conn *sql.DB) Repository { return &postgresRepo{db: conn} }

func (r *postgresRepo) List(ctx context.Context, limit, offset int) ([]*Store, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name FROM stores ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var stores []*Store
	for rows.Next() {
		s := &Store{}
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, 0, err
		}
		stores = append(stores, s)
	}
	return stores, total, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int) (*Store, error) {
	s := &Store{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM stores WHERE id=$1`, id).Scan(&s.ID, &s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return s, err
}

func (r *postgresRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM stores WHERE id=$1)`, id).Scan(&ok)
	return ok, err
}

func (r *postgresRepo) NameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM stores WHERE name=$1 AND id<>$2)`, name, excludeID).Scan(&ok)
	return ok, err
}

func (r *postgresRepo) Create(ctx context.Context, s *Store) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO stores (name) VALUES ($1) RETURNING id`, s.Name).Scan(&s.ID)
	if db.IsUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

func (r *postgresRepo) Update(ctx context.Context, s *Store) error {
	res, err := r.db.ExecContext(ctx, `UPDATE stores SET name=$1 WHERE id=$2`, s.Name, s.ID)
	if db.IsUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}
	return expectOne(res)
}

// Delete removes the store; employees and EOD reports cascade.
func (r *postgresRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
