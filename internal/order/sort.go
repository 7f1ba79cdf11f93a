package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey is one of the admin list's sort options.
type SortKey string

const (
	SortDateAsc        SortKey = "date asc"
	SortDateDesc       SortKey = "date desc"
	SortTotalPriceAsc  SortKey = "total_price asc"
	SortTotalPriceDesc SortKey = "total_price desc"

	DefaultSort = SortDateDesc
)

// ParseSort accepts "date desc" as well as "date_desc"; empty means DefaultSort.
func ParseSort(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}
	s = strings.ToLower(s)
	if i := strings.LastIndexAny(s, " _"); i > 0 && (s[i+1:] == "asc" || s[i+1:] == "desc") {
		s = s[:i] + " " + s[i+1:]
	}
	switch k := SortKey(s); k {
	case SortDateAsc, SortDateDesc, SortTotalPriceAsc, SortTotalPriceDesc:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// SortOrders returns a sorted copy; equal keys keep their input order.
func SortOrders(orders []Order, key SortKey) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)

	var less func(a, b Order) bool
	switch key {
	case SortDateAsc:
		less = func(a, b Order) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortTotalPriceAsc:
		less = func(a, b Order) bool { return price(a).LessThan(price(b)) }
	case SortTotalPriceDesc:
		less = func(a, b Order) bool { return price(a).GreaterThan(price(b)) }
	default:
		less = func(a, b Order) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// price is the order total as a decimal; unparseable totals count as zero.
func price(o Order) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(o.TotalPrice))
	if err != nil {
		return decimal.Zero
	}
	return d
}
