package eod

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/georgemunganga/hospo-ops/internal/apperr"
	"github.com/georgemunganga/hospo-ops/internal/db"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(conn *sql.DB) Repository { return &postgresRepo{db: conn} }

const selectColumns = `SELECT id, store_id, biz_date, net_sales, tickets, created_at FROM eod_reports`

func (r *postgresRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Report, int64, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.StoreID != nil {
		args = append(args, *f.StoreID)
		where = append(where, fmt.Sprintf("store_id=$%d", len(args)))
	}
	if f.From != nil {
		args = append(args, f.From.String())
		where = append(where, fmt.Sprintf("biz_date>=$%d::date", len(args)))
	}
	if f.To != nil {
		args = append(args, f.To.String())
		where = append(where, fmt.Sprintf("biz_date<=$%d::date", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM eod_reports`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY biz_date DESC, store_id, id LIMIT $%d OFFSET $%d",
		selectColumns, clause, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []*Report
	for rows.Next() {
		rep, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rep)
	}
	return out, total, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Report, error) {
	return one(scan(r.db.QueryRowContext(ctx, selectColumns+` WHERE id=$1`, id)))
}

func (r *postgresRepo) GetByStoreAndDate(ctx context.Context, storeID int, bizDate civil.Date) (*Report, error) {
	return one(scan(r.db.QueryRowContext(ctx,
		selectColumns+` WHERE store_id=$1 AND biz_date=$2::date`, storeID, bizDate.String())))
}

func (r *postgresRepo) DateTaken(ctx context.Context, storeID int, bizDate civil.Date, excludeID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM eod_reports WHERE store_id=$1 AND biz_date=$2::date AND id<>$3)`,
		storeID, bizDate.String(), excludeID).Scan(&ok)
	return ok, err
}

func (r *postgresRepo) Create(ctx context.Context, rep *Report) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO eod_reports (store_id, biz_date, net_sales, tickets, created_at)
		VALUES ($1,$2::date,$3,$4,$5) RETURNING id`,
		rep.StoreID, rep.BizDate.String(), rep.NetSales, rep.Tickets, rep.CreatedAt).Scan(&rep.ID)
	return mapErr(err)
}

func (r *postgresRepo) Update(ctx context.Context, rep *Report) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE eod_reports SET store_id=$1, biz_date=$2::date, net_sales=$3, tickets=$4
		WHERE id=$5`,
		rep.StoreID, rep.BizDate.String(), rep.NetSales, rep.Tickets, rep.ID)
	if err != nil {
		return mapErr(err)
	}
	return expectOne(res)
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM eod_reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scan(row rowScanner) (*Report, error) {
	rep := &Report{}
	var biz time.Time
	if err := row.Scan(&rep.ID, &rep.StoreID, &biz, &rep.NetSales, &rep.Tickets, &rep.CreatedAt); err != nil {
		return nil, err
	}
	rep.BizDate = civil.DateOf(biz)
	rep.CreatedAt = rep.CreatedAt.UTC()
	return rep, nil
}

func one(rep *Report, err error) (*Report, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return rep, err
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

func mapErr(err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return ErrDuplicateDate
	case db.IsForeignKeyViolation(err):
		return ErrUnknownStore
	}
	return err
}
