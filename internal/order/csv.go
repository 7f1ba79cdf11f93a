package order

import (
	"strings"
	"time"
)

// ToCSV renders one line per order, in the given order, with no header and no
// trailing newline. Full name, address and tags are wrapped in double quotes
// as-is; embedded quotes and commas are not escaped, so the output matches the
// file the admin export has always produced.
func ToCSV(orders []Order) string {
	var b strings.Builder
	for i, o := range orders {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join([]string{
			o.OrderID,
			o.OrderNumber,
			o.TotalPrice,
			str(o.PaymentGateway),
			str(o.CustomerEmail),
			`"` + str(o.CustomerFullName) + `"`,
			`"` + str(o.CustomerAddress) + `"`,
			`"` + str(o.Tags) + `"`,
			o.CreatedAt.UTC().Format(time.RFC3339),
		}, ","))
	}
	return b.String()
}
