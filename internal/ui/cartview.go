package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
)

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m.handleLocalCartKey(msg)
	}

	snap := m.cart.Snapshot()
	lines := snap.Lines

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cartView.selected < len(lines)-1 {
			m.cartView.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cartView.selected > 0 {
			m.cartView.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.More):
		if line, ok := m.selectedLine(lines); ok {
			id, q := line.Product.ID, line.Quantity+1
			return m, cartCmd(m.ctx, "update", func(ctx context.Context) error {
				return m.cart.SetQuantity(ctx, id, q)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.Less):
		if line, ok := m.selectedLine(lines); ok {
			if line.Quantity <= 1 {
				return m, nil
			}
			id, q := line.Product.ID, line.Quantity-1
			return m, cartCmd(m.ctx, "update", func(ctx context.Context) error {
				return m.cart.SetQuantity(ctx, id, q)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		if line, ok := m.selectedLine(lines); ok {
			id := line.Product.ID
			return m, cartCmd(m.ctx, "remove", func(ctx context.Context) error {
				return m.cart.Remove(ctx, id)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		if len(lines) == 0 {
			return m, nil
		}
		return m, cartCmd(m.ctx, "clear", m.cart.Clear)

	case key.Matches(msg, m.keys.Checkout):
		if len(lines) == 0 {
			m.setError("cart is empty")
			return m, nil
		}
		checkout := make([]api.CheckoutLine, 0, len(lines))
		for _, line := range lines {
			checkout = append(checkout, api.CheckoutLine{
				Name:     line.Product.Name,
				Price:    line.Product.Price,
				Quantity: line.Quantity,
			})
		}
		m.setStatus("creating checkout session...")
		return m, checkoutCmd(m.ctx, m.client, checkout)

	case key.Matches(msg, m.keys.Select):
		if line, ok := m.selectedLine(lines); ok {
			m.detail.seq++
			return m, openProductCmd(m.ctx, m.client, m.detail.seq, line.Product.ID)
		}
		return m, nil
	}

	return m, nil
}

// handleLocalCartKey covers the anonymous id-list cart.
func (m Model) handleLocalCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.localCartProducts()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cartView.selected < len(products)-1 {
			m.cartView.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cartView.selected > 0 {
			m.cartView.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		if m.cartView.selected < len(products) && m.localCart != nil {
			if err := m.localCart.Remove(products[m.cartView.selected].ID); err != nil {
				m.setError(errorText(err))
			}
			if m.cartView.selected > 0 {
				m.cartView.selected--
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Checkout):
		m.setError("log in to check out (press 4)")
		return m, nil
	}

	return m, nil
}

func (m Model) selectedLine(lines []api.CartItem) (api.CartItem, bool) {
	if len(lines) == 0 || m.cartView.selected >= len(lines) {
		return api.CartItem{}, false
	}
	return lines[m.cartView.selected], true
}

func (m Model) localCartProducts() []api.Product {
	if m.localCart == nil {
		return nil
	}
	byID := make(map[string]api.Product, len(m.snapshot.Products))
	for _, p := range m.snapshot.Products {
		byID[p.ID] = p
	}
	var out []api.Product
	for _, id := range m.localCart.IDs() {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// renderCart renders either the server cart or the local id list.
func (m Model) renderCart() string {
	if !m.authenticated() {
		return m.renderLocalCart()
	}

	snap := m.cart.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Cart"))
	b.WriteString("\n\n")

	if len(snap.Lines) == 0 {
		b.WriteString(m.styles.MutedText.Render("your cart is empty, press a on a product"))
		return b.String()
	}

	for i, line := range snap.Lines {
		marker := "  "
		if i == m.cartView.selected {
			marker = "> "
		}
		// Rows use the plain list price so they sum to Snapshot.Total;
		// checkout lines are priced the same way.
		row := fmt.Sprintf("%s%-36s x%-3d %10s",
			marker,
			truncate(line.Product.Name, 36),
			line.Quantity,
			formatPrice(line.Product.Price*float64(line.Quantity)),
		)
		if i == m.cartView.selected {
			b.WriteString(m.styles.Selected.Render(row))
		} else {
			b.WriteString(m.styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("total %s", formatPrice(snap.Total))))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("+/- quantity  d remove  0 clear  x checkout"))

	if m.cartView.checkout != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Success.Render("checkout: "))
		b.WriteString(m.styles.Text.Render(m.cartView.checkout))
	}

	return b.String()
}

func (m Model) renderLocalCart() string {
	products := m.localCartProducts()

	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Cart (saved on this device)"))
	b.WriteString("\n\n")

	if len(products) == 0 {
		b.WriteString(m.styles.MutedText.Render("nothing here yet, press a on a product"))
		return b.String()
	}

	for i, p := range products {
		marker := "  "
		if i == m.cartView.selected {
			marker = "> "
		}
		row := fmt.Sprintf("%s%-40s %10s", marker, truncate(p.Name, 40), formatPrice(p.Price))
		if i == m.cartView.selected {
			b.WriteString(m.styles.Selected.Render(row))
		} else {
			b.WriteString(m.styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("log in (press 4) to sync and check out"))
	return b.String()
}
