package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
)

// favoriteProducts returns the products to show in the favorites
// view. Signed-in sessions use the server list; anonymous sessions
// resolve the locally saved ids against the catalog snapshot.
func (m Model) favoriteProducts() []api.Product {
	if m.authenticated() {
		return m.favorites.products
	}
	if m.localFavs == nil {
		return nil
	}
	byID := make(map[string]api.Product, len(m.snapshot.Products))
	for _, p := range m.snapshot.Products {
		byID[p.ID] = p
	}
	var out []api.Product
	for _, id := range m.localFavs.IDs() {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.favoriteProducts()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.favorites.selected < len(products)-1 {
			m.favorites.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.favorites.selected > 0 {
			m.favorites.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.favorites.selected < len(products) {
			m.detail.seq++
			return m, openProductCmd(m.ctx, m.client, m.detail.seq, products[m.favorites.selected].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		// The row stays until the toggle settles; handleToggleDone
		// drops it only once the server confirms the un-favorite.
		if m.favorites.selected < len(products) {
			cmd := m.toggleFavorite(products[m.favorites.selected].ID)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.AddCart):
		if m.favorites.selected < len(products) {
			cmd := m.addToCart(products[m.favorites.selected].ID)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) renderFavorites() string {
	products := m.favoriteProducts()

	var b strings.Builder
	if m.authenticated() {
		b.WriteString(m.styles.Accent.Render("Favorites"))
	} else {
		b.WriteString(m.styles.Accent.Render("Favorites (saved on this device)"))
	}
	b.WriteString("\n\n")

	if len(products) == 0 {
		b.WriteString(m.styles.MutedText.Render("nothing saved yet, press f on a product"))
		return b.String()
	}

	visible := m.listWindow(len(products), m.favorites.selected)
	for i := visible.start; i < visible.end; i++ {
		b.WriteString(m.renderProductRow(products[i], i == m.favorites.selected))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%d saved", len(products))))
	return b.String()
}

func removeProduct(products []api.Product, id string) []api.Product {
	out := products[:0]
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
