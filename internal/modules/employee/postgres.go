package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/georgemunganga/hospo-ops/internal/apperr"
	"github.com/georgemunganga/hospo-ops/internal/db"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(conn *sql.DB) Repository { return &postgresRepo{db: conn} }

const selectColumns = `SELECT id, store_id, full_name, role, hire_date, active FROM employees`

func (r *postgresRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Employee, int64, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.StoreID != nil {
		args = append(args, *f.StoreID)
		where = append(where, fmt.Sprintf("store_id=$%d", len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		where = append(where, fmt.Sprintf("active=$%d", len(args)))
	}
	if strings.TrimSpace(f.Name) != "" {
		args = append(args, f.Name)
		where = append(where, fmt.Sprintf("strpos(full_name, $%d) > 0", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY full_name, id LIMIT $%d OFFSET $%d",
		selectColumns, clause, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []*Employee
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int) (*Employee, error) {
	e, err := r.scan(r.db.QueryRowContext(ctx, selectColumns+` WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return e, err
}

func (r *postgresRepo) NameTaken(ctx context.Context, storeID int, fullName string, excludeID int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM employees WHERE store_id=$1 AND full_name=$2 AND id<>$3)`,
		storeID, fullName, excludeID).Scan(&ok)
	return ok, err
}

func (r *postgresRepo) Create(ctx context.Context, e *Employee) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (store_id, full_name, role, hire_date, active)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		e.StoreID, e.FullName, e.Role, dateArg(e.HireDate), e.Active).Scan(&e.ID)
	return mapErr(err)
}

func (r *postgresRepo) Update(ctx context.Context, e *Employee) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE employees SET store_id=$1, full_name=$2, role=$3, hire_date=$4, active=$5
		WHERE id=$6`,
		e.StoreID, e.FullName, e.Role, dateArg(e.HireDate), e.Active, e.ID)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Employee, error) {
	e := &Employee{}
	var hire sql.NullTime
	if err := row.Scan(&e.ID, &e.StoreID, &e.FullName, &e.Role, &hire, &e.Active); err != nil {
		return nil, err
	}
	if hire.Valid {
		d := civil.DateOf(hire.Time)
		e.HireDate = &d
	}
	return e, nil
}

func dateArg(d *civil.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func mapErr(err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return ErrDuplicateName
	case db.IsForeignKeyViolation(err):
		return ErrUnknownStore
	}
	return err
}
