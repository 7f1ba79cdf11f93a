// Package ordertest provides an in-memory order.Repository for tests.
package ordertest

import (
	"context"
	"sync"
	"time"

	"github.com/MikeMC777/ordenes-webhooks/internal/order"
)

// MemRepo implements order.Repository in memory and counts writes.
// When Err is set every call fails with it.
type MemRepo struct {
	Err error
	Now func() time.Time

	mu     sync.Mutex
	nextID int64
	items  []order.Order
	writes int
}

func NewMemRepo(seed ...order.Order) *MemRepo {
	r := &MemRepo{}
	for _, o := range seed {
		if o.ID == 0 {
			o.ID = r.nextID + 1
		}
		if o.ID > r.nextID {
			r.nextID = o.ID
		}
		r.items = append(r.items, o)
	}
	return r
}

// Items returns a copy of the stored orders in insertion order.
func (r *MemRepo) Items() []order.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]order.Order(nil), r.items...)
}

// Writes is the number of successful inserts and updates.
func (r *MemRepo) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *MemRepo) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func (r *MemRepo) Create(ctx context.Context, d order.OrderData) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(d)
}

func (r *MemRepo) Update(ctx context.Context, id int64, p order.Patch) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apply(id, p)
}

func (r *MemRepo) List(ctx context.Context) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]order.Order{}, r.items...), nil
}

func (r *MemRepo) FindByOrderID(ctx context.Context, orderID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, o := range r.items {
		if o.OrderID == orderID {
			cp := o
			return &cp, nil
		}
	}
	return nil, order.ErrNotFound
}

func (r *MemRepo) Upsert(ctx context.Context, d order.OrderData) (*order.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.OrderID == d.OrderID {
			out, err := r.apply(o.ID, d.Patch())
			return out, false, err
		}
	}
	out, err := r.insert(d)
	return out, err == nil, err
}

func (r *MemRepo) insert(d order.OrderData) (*order.Order, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.nextID++
	r.writes++
	now := r.now()
	o := order.Order{
		ID:               r.nextID,
		OrderID:          d.OrderID,
		OrderNumber:      d.OrderNumber,
		TotalPrice:       d.TotalPrice,
		PaymentGateway:   clone(d.PaymentGateway),
		CustomerEmail:    clone(d.CustomerEmail),
		CustomerFullName: clone(d.CustomerFullName),
		CustomerAddress:  clone(d.CustomerAddress),
		Tags:             clone(d.Tags),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.items = append(r.items, o)
	return &o, nil
}

func (r *MemRepo) apply(id int64, p order.Patch) (*order.Order, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.items {
		o := &r.items[i]
		if o.ID != id {
			continue
		}
		r.writes++
		if p.OrderNumber != nil {
			o.OrderNumber = *p.OrderNumber
		}
		if p.TotalPrice != nil {
			o.TotalPrice = *p.TotalPrice
		}
		keep(&o.PaymentGateway, p.PaymentGateway)
		keep(&o.CustomerEmail, p.CustomerEmail)
		keep(&o.CustomerFullName, p.CustomerFullName)
		keep(&o.CustomerAddress, p.CustomerAddress)
		keep(&o.Tags, p.Tags)
		o.UpdatedAt = r.now()
		cp := *o
		return &cp, nil
	}
	return nil, order.ErrNotFound
}

// keep overwrites *dst only when v is set.
func keep(dst **string, v *string) {
	if v != nil {
		*dst = clone(v)
	}
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
