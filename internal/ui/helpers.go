package ui

import (
	"fmt"

	"github.com/restyle/restyle/internal/api"
)

// window is a half-open [start, end) slice of list rows to render.
type window struct {
	start int
	end   int
}

// listWindow keeps the cursor visible inside the rows that fit the
// terminal height.
func (m Model) listWindow(total, cursor int) window {
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}
	if total <= rows {
		return window{start: 0, end: total}
	}

	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > total {
		end = total
		start = end - rows
	}
	return window{start: start, end: end}
}

// isFavorite checks the engine for signed-in sessions and the local
// set otherwise.
func (m Model) isFavorite(id string) bool {
	if m.authenticated() {
		return m.engage != nil && m.engage.IsFavorite(id)
	}
	return m.localFavs != nil && m.localFavs.Contains(id)
}

func (m Model) inCart(id string) bool {
	if m.authenticated() {
		return m.cart != nil && m.cart.Contains(id)
	}
	return m.localCart != nil && m.localCart.Contains(id)
}

// effectivePrice applies the discount percentage to the list price.
func effectivePrice(p api.Product) float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// truncate shortens s to max runes, appending an ellipsis when it
// had to cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
