package ui

import (
	"testing"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/catalog"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer product name", 10, "a longer …"},
		{"ünïcödé nämé", 7, "ünïcöd…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestEffectivePrice(t *testing.T) {
	t.Parallel()

	p := api.Product{Price: 100}
	if got := effectivePrice(p); got != 100 {
		t.Errorf("no discount: got %v", got)
	}
	p.Discount = 25
	if got := effectivePrice(p); got != 75 {
		t.Errorf("25%% off 100: got %v", got)
	}
}

func TestListWindowKeepsCursorVisible(t *testing.T) {
	t.Parallel()

	m := Model{height: 20} // 12 rows of list space
	w := m.listWindow(100, 50)
	if 50 < w.start || 50 >= w.end {
		t.Errorf("cursor 50 outside window [%d, %d)", w.start, w.end)
	}

	w = m.listWindow(100, 99)
	if w.end != 100 || 99 < w.start {
		t.Errorf("cursor at end outside window [%d, %d)", w.start, w.end)
	}

	w = m.listWindow(5, 2)
	if w.start != 0 || w.end != 5 {
		t.Errorf("short list should render fully, got [%d, %d)", w.start, w.end)
	}
}

func TestNextValueCyclesThroughEmpty(t *testing.T) {
	t.Parallel()

	values := []string{"dresses", "shoes"}
	order := []string{"", "dresses", "shoes", ""}
	for i := 0; i < len(order)-1; i++ {
		if got := nextValue(values, order[i]); got != order[i+1] {
			t.Errorf("nextValue(%q) = %q, want %q", order[i], got, order[i+1])
		}
	}
	if got := nextValue(nil, "anything"); got != "" {
		t.Errorf("nextValue with no values = %q, want empty", got)
	}
}

func TestNextSortFieldCycle(t *testing.T) {
	t.Parallel()

	if got := nextSortField(catalog.SortNone); got != catalog.SortPrice {
		t.Errorf("after none: %q", got)
	}
	if got := nextSortField(catalog.SortPrice); got != catalog.SortDiscount {
		t.Errorf("after price: %q", got)
	}
	if got := nextSortField(catalog.SortDiscount); got != catalog.SortNone {
		t.Errorf("after discount: %q", got)
	}
}

func TestNextPriceTierWraps(t *testing.T) {
	t.Parallel()

	current := 0.0
	for range maxPriceTiers {
		current = nextPriceTier(current)
	}
	if current != 0 {
		t.Errorf("tier cycle did not wrap, ended on %v", current)
	}
}
