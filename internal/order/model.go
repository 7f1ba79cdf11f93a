package order

import "time"

// Order is one row of the orders table. Optional columns are nil when the
// webhook payload did not carry them.
type Order struct {
	ID               int64     `json:"id"`
	OrderID          string    `json:"order_id"`
	OrderNumber      string    `json:"order_number"`
	TotalPrice       string    `json:"total_price"` // NUMERIC-like text, stored as received
	PaymentGateway   *string   `json:"payment_gateway,omitempty"`
	CustomerEmail    *string   `json:"customer_email,omitempty"`
	CustomerFullName *string   `json:"customer_full_name,omitempty"`
	CustomerAddress  *string   `json:"customer_address,omitempty"`
	Tags             *string   `json:"tags,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrderData is the normalized form of a webhook payload, ready to persist.
type OrderData struct {
	OrderID          string
	OrderNumber      string
	TotalPrice       string
	PaymentGateway   *string
	CustomerEmail    *string
	CustomerFullName *string
	CustomerAddress  *string
	Tags             *string
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	OrderNumber      *string
	TotalPrice       *string
	PaymentGateway   *string
	CustomerEmail    *string
	CustomerFullName *string
	CustomerAddress  *string
	Tags             *string
}

// Patch returns an update that overwrites every mutable field with d.
// OrderID is the business key and never changes.
func (d OrderData) Patch() Patch {
	return Patch{
		OrderNumber:      &d.OrderNumber,
		TotalPrice:       &d.TotalPrice,
		PaymentGateway:   d.PaymentGateway,
		CustomerEmail:    d.CustomerEmail,
		CustomerFullName: d.CustomerFullName,
		CustomerAddress:  d.CustomerAddress,
		Tags:             d.Tags,
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptr(s string) *string { return &s }
