package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Create(ctx context.Context, d OrderData) (*Order, error)
	Update(ctx context.Context, id int64, p Patch) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	FindByOrderID(ctx context.Context, orderID string) (*Order, error)
	// Upsert inserts d or, when a row with the same OrderID exists, overwrites
	// its mutable fields in the same statement. inserted is false on update.
	Upsert(ctx context.Context, d OrderData) (o *Order, inserted bool, err error)
}

const orderColumns = `id, order_id, order_number, total_price, payment_gateway,
	customer_email, customer_full_name, customer_address, tags, created_at, updated_at`

type PGRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPGRepo(db *pgxpool.Pool, timeout time.Duration) *PGRepo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PGRepo{db: db, timeout: timeout}
}

func (r *PGRepo) Create(ctx context.Context, d OrderData) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (order_id, order_number, total_price, payment_gateway,
			customer_email, customer_full_name, customer_address, tags, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		RETURNING `+orderColumns,
		d.OrderID, d.OrderNumber, d.TotalPrice, d.PaymentGateway,
		d.CustomerEmail, d.CustomerFullName, d.CustomerAddress, d.Tags)
	o, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("create order %s: %w", d.OrderID, err)
	}
	return o, nil
}

func (r *PGRepo) Update(ctx context.Context, id int64, p Patch) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// NULL parameters keep the current value.
	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET order_number       = COALESCE($2, order_number),
		    total_price        = COALESCE($3, total_price),
		    payment_gateway    = COALESCE($4, payment_gateway),
		    customer_email     = COALESCE($5, customer_email),
		    customer_full_name = COALESCE($6, customer_full_name),
		    customer_address   = COALESCE($7, customer_address),
		    tags               = COALESCE($8, tags),
		    updated_at         = NOW()
		WHERE id = $1
		RETURNING `+orderColumns,
		id, p.OrderNumber, p.TotalPrice, p.PaymentGateway,
		p.CustomerEmail, p.CustomerFullName, p.CustomerAddress, p.Tags)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}
	return o, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func (r *PGRepo) FindByOrderID(ctx context.Context, orderID string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE order_id = $1
		ORDER BY id LIMIT 1
	`, orderID)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}
	return o, nil
}

func (r *PGRepo) Upsert(ctx context.Context, d OrderData) (*Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// xmax is 0 only for a freshly inserted tuple.
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (order_id, order_number, total_price, payment_gateway,
			customer_email, customer_full_name, customer_address, tags, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		ON CONFLICT (order_id) DO UPDATE
		SET order_number       = EXCLUDED.order_number,
		    total_price        = EXCLUDED.total_price,
		    payment_gateway    = COALESCE(EXCLUDED.payment_gateway, orders.payment_gateway),
		    customer_email     = COALESCE(EXCLUDED.customer_email, orders.customer_email),
		    customer_full_name = COALESCE(EXCLUDED.customer_full_name, orders.customer_full_name),
		    customer_address   = COALESCE(EXCLUDED.customer_address, orders.customer_address),
		    tags               = COALESCE(EXCLUDED.tags, orders.tags),
		    updated_at         = NOW()
		RETURNING `+orderColumns+`, (xmax = 0)`,
		d.OrderID, d.OrderNumber, d.TotalPrice, d.PaymentGateway,
		d.CustomerEmail, d.CustomerFullName, d.CustomerAddress, d.Tags)

	var (
		o        Order
		inserted bool
	)
	err := row.Scan(&o.ID, &o.OrderID, &o.OrderNumber, &o.TotalPrice, &o.PaymentGateway,
		&o.CustomerEmail, &o.CustomerFullName, &o.CustomerAddress, &o.Tags,
		&o.CreatedAt, &o.UpdatedAt, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("upsert order %s: %w", d.OrderID, err)
	}
	return &o, inserted, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.OrderID, &o.OrderNumber, &o.TotalPrice, &o.PaymentGateway,
		&o.CustomerEmail, &o.CustomerFullName, &o.CustomerAddress, &o.Tags,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
