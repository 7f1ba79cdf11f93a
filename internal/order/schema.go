package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the orders table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id                 BIGSERIAL PRIMARY KEY,
			order_id           TEXT NOT NULL UNIQUE,
			order_number       TEXT NOT NULL,
			total_price        TEXT NOT NULL DEFAULT '0',
			payment_gateway    TEXT,
			customer_email     TEXT,
			customer_full_name TEXT,
			customer_address   TEXT,
			tags               TEXT,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure orders schema: %w", err)
	}
	return nil
}
