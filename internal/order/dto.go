package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Scalar is an identifier the platform may send either as a JSON number or as
// a JSON string ("#1001"). The literal text is kept as-is; null leaves it empty.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Scalar(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want number or string, got %s", b)
	}
	*s = Scalar(n)
	return nil
}

func (s Scalar) String() string { return string(s) }

// Payload is the order resource the platform posts on orders/create and
// orders/updated. Every nested object is optional.
// swagger:model Payload
type Payload struct {
	ID                  Scalar          `json:"id"                    validate:"required" swaggertype:"integer" example:"450789469"`
	OrderNumber         Scalar          `json:"order_number"          swaggertype:"integer" example:"1001"`
	TotalPrice          *string         `json:"total_price"           example:"598.94"`
	PaymentGatewayNames []string        `json:"payment_gateway_names" validate:"required"`
	Customer            *Customer       `json:"customer"`
	Tags                json.RawMessage `json:"tags"                  swaggertype:"string" example:"vip, wholesale"`
}

// Customer is the buyer block of the payload.
// swagger:model Customer
type Customer struct {
	Email          *string  `json:"email"      example:"bob.norman@mail.example.com"`
	FirstName      *string  `json:"first_name" example:"Bob"`
	LastName       *string  `json:"last_name"  example:"Norman"`
	DefaultAddress *Address `json:"default_address"`
}

// Address is the customer's default address.
// swagger:model Address
type Address struct {
	Address1 *string `json:"address1" example:"Chestnut Street 92"`
	City     *string `json:"city"     example:"Louisville"`
	Province *string `json:"province" example:"Kentucky"`
	Country  *string `json:"country"  example:"United States"`
}

// tagsText returns the tags as stored: strings pass through, string arrays are
// joined with ", ", null or absent yields nil. Other shapes are kept as raw JSON.
func (p Payload) tagsText() *string {
	raw := strings.TrimSpace(string(p.Tags))
	if raw == "" || raw == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(p.Tags, &s); err == nil {
		return &s
	}
	var list []string
	if err := json.Unmarshal(p.Tags, &list); err == nil {
		joined := strings.Join(list, ", ")
		return &joined
	}
	return &raw
}
