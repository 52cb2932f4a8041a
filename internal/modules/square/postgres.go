package square

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(conn *sql.DB) Repository { return &postgresRepo{db: conn} }

func (r *postgresRepo) Record(ctx context.Context, e *Event) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO square_events (store_id, event_type, signature, payload, received_at, processed)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		e.StoreID, e.EventType, e.Signature, e.Payload, e.ReceivedAt, e.Processed).Scan(&e.ID)
}
