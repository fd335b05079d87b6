// Package catalog is the pure view-model transform over a fetched
// product collection: conjunctive filtering plus single-field sorting.
// Nothing here caches or mutates its input; callers recompute on every
// change.
package catalog

import (
	"sort"
	"strings"

	"github.com/restyle/restyle/internal/api"
)

// Filter holds the browse dimensions. A zero-valued dimension always
// matches.
type Filter struct {
	Query    string
	Category string
	Color    string
	Size     string
	MaxPrice float64
}

// IsZero reports whether no dimension is set.
func (f Filter) IsZero() bool {
	return f.Query == "" && f.Category == "" && f.Color == "" && f.Size == "" && f.MaxPrice <= 0
}

// Order is the sort direction.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Sortable fields.
const (
	SortNone     = ""
	SortPrice    = "price"
	SortDiscount = "discount"
)

// Apply returns the products matching every set dimension, in their
// original order. The input is never modified.
func Apply(products []api.Product, f Filter) []api.Product {
	if f.IsZero() {
		return clone(products)
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	matched := make([]api.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Color != "" && !contains(p.Colors, f.Color) {
			continue
		}
		if f.Size != "" && !contains(p.Sizes, f.Size) {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// Sort orders products by the given numeric field. An empty field is a
// no-op that preserves the original order. The sort is stable and the
// input is never modified.
func Sort(products []api.Product, field string, order Order) []api.Product {
	out := clone(products)
	if field == SortNone {
		return out
	}

	key := func(p api.Product) float64 {
		switch field {
		case SortPrice:
			return p.Price
		case SortDiscount:
			return p.Discount
		default:
			return 0
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == Descending {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func clone(products []api.Product) []api.Product {
	if len(products) == 0 {
		return nil
	}
	dup := make([]api.Product, len(products))
	copy(dup, products)
	return dup
}
