package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/catalog"
)

// maxPriceTiers are the price caps the M key cycles through. Zero
// means no cap.
var maxPriceTiers = []float64{0, 25, 50, 100, 250}

// handleBrowseKey processes keyboard input for the catalog list.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.visibleProducts()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.browse.selected < len(products)-1 {
			m.browse.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.browse.selected > 0 {
			m.browse.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if p := m.selectedProduct(products); p != nil {
			m.detail.seq++
			return m, openProductCmd(m.ctx, m.client, m.detail.seq, p.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.browse.searching = true
		m.browse.search.SetValue(m.browse.filter.Query)
		m.browse.search.Focus()
		return m, nil

	case key.Matches(msg, m.keys.SortField):
		m.browse.sortField = nextSortField(m.browse.sortField)
		return m, nil

	case key.Matches(msg, m.keys.SortOrder):
		if m.browse.sortOrder == catalog.Ascending {
			m.browse.sortOrder = catalog.Descending
		} else {
			m.browse.sortOrder = catalog.Ascending
		}
		return m, nil

	case key.Matches(msg, m.keys.Category):
		m.browse.filter.Category = nextValue(m.categories(), m.browse.filter.Category)
		m.clampBrowseCursor()
		return m, nil

	case key.Matches(msg, m.keys.MaxPrice):
		m.browse.filter.MaxPrice = nextPriceTier(m.browse.filter.MaxPrice)
		m.clampBrowseCursor()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		m.browse.filter = catalog.Filter{}
		m.browse.sortField = catalog.SortNone
		m.browse.sortOrder = catalog.Ascending
		m.clampBrowseCursor()
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if p := m.selectedProduct(products); p != nil {
			cmd := m.toggleFavorite(p.ID)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Like):
		if p := m.selectedProduct(products); p != nil {
			cmd := m.toggleLike(p.ID)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.AddCart):
		if p := m.selectedProduct(products); p != nil {
			cmd := m.addToCart(p.ID)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey routes input into the search box.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.browse.searching = false
		m.browse.search.Blur()
		return m, nil
	case "enter":
		m.browse.filter.Query = strings.TrimSpace(m.browse.search.Value())
		m.browse.searching = false
		m.browse.search.Blur()
		m.clampBrowseCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.browse.search, cmd = m.browse.search.Update(msg)
	// Live filtering: the list narrows as the query is typed.
	m.browse.filter.Query = strings.TrimSpace(m.browse.search.Value())
	m.clampBrowseCursor()
	return m, cmd
}

func (m Model) selectedProduct(products []api.Product) *api.Product {
	if len(products) == 0 || m.browse.selected >= len(products) {
		return nil
	}
	p := products[m.browse.selected]
	return &p
}

// toggleFavorite dispatches the right favorite flow for the current
// session: the engine when signed in, the local set otherwise.
func (m *Model) toggleFavorite(id string) tea.Cmd {
	if m.authenticated() {
		return toggleFavoriteCmd(m.ctx, m.engage, id)
	}
	if m.localFavs == nil {
		return nil
	}
	now, err := m.localFavs.Toggle(id)
	if err != nil {
		m.setError(errorText(err))
		return nil
	}
	if now {
		m.setStatus("saved locally, log in to sync favorites")
	} else {
		m.setStatus("removed from local favorites")
	}
	return nil
}

func (m *Model) toggleLike(id string) tea.Cmd {
	if !m.authenticated() {
		m.setError("log in to like products (press 4)")
		return nil
	}
	return toggleLikeCmd(m.ctx, m.engage, id)
}

func (m *Model) addToCart(id string) tea.Cmd {
	if m.authenticated() {
		return cartCmd(m.ctx, "add", func(ctx context.Context) error {
			return m.cart.Add(ctx, id, 1)
		})
	}
	if m.localCart == nil {
		return nil
	}
	if err := m.localCart.Add(id); err != nil {
		m.setError(errorText(err))
		return nil
	}
	m.setStatus("saved locally, log in to sync your cart")
	return nil
}

// renderBrowse renders the catalog list with the active filters.
func (m Model) renderBrowse() string {
	products := m.visibleProducts()

	var b strings.Builder
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if m.snapshot.IsOffline() {
		b.WriteString(m.styles.Danger.Render("offline, showing last known catalog"))
		b.WriteString("\n\n")
	}

	if len(products) == 0 {
		if m.snapshot.HasProducts {
			b.WriteString(m.styles.MutedText.Render("no products match the current filters"))
		} else {
			b.WriteString(m.styles.MutedText.Render("no products yet"))
		}
		return b.String()
	}

	visible := m.listWindow(len(products), m.browse.selected)
	for i := visible.start; i < visible.end; i++ {
		b.WriteString(m.renderProductRow(products[i], i == m.browse.selected))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(
		fmt.Sprintf("%d of %d products", m.browse.selected+1, len(products))))
	return b.String()
}

// renderProductRow renders one catalog line: marker, name, price,
// badges for favorite and cart membership.
func (m Model) renderProductRow(p api.Product, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	var badges []string
	if m.isFavorite(p.ID) {
		badges = append(badges, m.styles.Accent.Render("♥"))
	}
	if m.inCart(p.ID) {
		badges = append(badges, m.styles.Success.Render("cart"))
	}
	if p.Secondhand {
		badges = append(badges, m.styles.MutedText.Render("pre-owned"))
	}
	if p.Discount > 0 {
		badges = append(badges, m.styles.Warning.Render(fmt.Sprintf("-%.0f%%", p.Discount)))
	}

	line := fmt.Sprintf("%s%-40s %10s  %s",
		marker,
		truncate(p.Name, 40),
		formatPrice(effectivePrice(p)),
		strings.Join(badges, " "),
	)
	if selected {
		return m.styles.Selected.Render(line)
	}
	return m.styles.Text.Render(line)
}

// renderFilterBar shows the search box or the active filter summary.
func (m Model) renderFilterBar() string {
	if m.browse.searching {
		return m.browse.search.View()
	}

	var parts []string
	if m.browse.filter.Query != "" {
		parts = append(parts, fmt.Sprintf("search:%q", m.browse.filter.Query))
	}
	if m.browse.filter.Category != "" {
		parts = append(parts, "category:"+m.browse.filter.Category)
	}
	if m.browse.filter.MaxPrice > 0 {
		parts = append(parts, fmt.Sprintf("under %s", formatPrice(m.browse.filter.MaxPrice)))
	}
	if m.browse.sortField != catalog.SortNone {
		dir := "asc"
		if m.browse.sortOrder == catalog.Descending {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort:%s %s", m.browse.sortField, dir))
	}

	if len(parts) == 0 {
		return m.styles.MutedText.Render("/ search  s sort  C category  M max price  0 clear")
	}
	return m.styles.Accent.Render(strings.Join(parts, "  "))
}

// categories returns the distinct categories in the current snapshot,
// sorted, for the C key to cycle through.
func (m Model) categories() []string {
	seen := make(map[string]struct{})
	for _, p := range m.snapshot.Products {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// nextValue cycles through values with "" (no filter) between the
// last value and the first.
func nextValue(values []string, current string) string {
	if len(values) == 0 {
		return ""
	}
	if current == "" {
		return values[0]
	}
	for i, v := range values {
		if v == current {
			if i == len(values)-1 {
				return ""
			}
			return values[i+1]
		}
	}
	return ""
}

func nextSortField(current string) string {
	switch current {
	case catalog.SortNone:
		return catalog.SortPrice
	case catalog.SortPrice:
		return catalog.SortDiscount
	default:
		return catalog.SortNone
	}
}

func nextPriceTier(current float64) float64 {
	for i, tier := range maxPriceTiers {
		if tier == current {
			return maxPriceTiers[(i+1)%len(maxPriceTiers)]
		}
	}
	return 0
}
