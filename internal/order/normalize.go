package order

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPayload is returned when a webhook payload lacks a field the
// mapping depends on.
var ErrInvalidPayload = errors.New("invalid order payload")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report payload field names, not Go names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the fields Normalize cannot default: the order id and the
// payment gateway list (an empty list is fine, a missing one is not).
func (p Payload) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("%w: missing %s", ErrInvalidPayload, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// Normalize maps a platform payload onto the local order record.
func Normalize(p Payload) (OrderData, error) {
	if err := p.Validate(); err != nil {
		return OrderData{}, err
	}

	total := "0"
	if p.TotalPrice != nil && *p.TotalPrice != "" {
		total = *p.TotalPrice
	}

	var email, first, last string
	var addr *Address
	if c := p.Customer; c != nil {
		email = str(c.Email)
		first = str(c.FirstName)
		last = str(c.LastName)
		addr = c.DefaultAddress
	}

	return OrderData{
		OrderID:          p.ID.String(),
		OrderNumber:      p.OrderNumber.String(),
		TotalPrice:       total,
		PaymentGateway:   ptr(strings.Join(p.PaymentGatewayNames, ", ")),
		CustomerEmail:    ptr(email),
		CustomerFullName: ptr(strings.TrimSpace(first + " " + last)),
		CustomerAddress:  ptr(FormatAddress(addr)),
		Tags:             p.tagsText(),
	}, nil
}

// FormatAddress joins the non-empty address line, city, province and country
// with ", ". A nil address yields "".
func FormatAddress(a *Address) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, v := range []*string{a.Address1, a.City, a.Province, a.Country} {
		if s := str(v); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
