package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
)

func (m Model) sellFormActive() bool {
	return m.sell.editing
}

// myListings returns the products the actor may manage: their own
// listings, or the whole catalog for moderators.
func (m Model) myListings() []api.Product {
	actor, ok := m.session.Actor()
	if !ok {
		return nil
	}
	if actor.CanModerate() {
		return m.snapshot.Products
	}
	var out []api.Product
	for _, p := range m.snapshot.Products {
		if p.SellerID == actor.ID {
			out = append(out, p)
		}
	}
	return out
}

// handleSellKey processes keyboard input for the listings view.
func (m Model) handleSellKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actor, ok := m.session.Actor()
	if !ok {
		m.setError("log in as a seller to manage listings (press 4)")
		return m, nil
	}
	if !actor.CanSell() && !actor.CanModerate() {
		return m, nil
	}

	listings := m.myListings()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.sell.selected < len(listings)-1 {
			m.sell.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.sell.selected > 0 {
			m.sell.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		if m.sell.selected < len(listings) {
			p := listings[m.sell.selected]
			admin := p.SellerID != actor.ID && actor.CanModerate()
			m.setStatus("deleting " + p.Name + "...")
			return m, deleteProductCmd(m.ctx, m.client, m.sell.seq, p.ID, admin)
		}
		return m, nil
	}

	if msg.String() == "n" && actor.CanSell() {
		m.sell.editing = true
		m.sell.inputs = newSellInputs()
		m.sell.inputs[0].Focus()
		m.sell.focus = 0
		return m, nil
	}

	return m, nil
}

// handleSellFormKey drives the new-listing form.
func (m Model) handleSellFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.resetSellForm()
		return m, nil

	case "tab", "down":
		m.focusSellInput(m.sell.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.focusSellInput(m.sell.focus - 1)
		return m, nil

	case "enter":
		return m.submitListing()
	}

	var cmd tea.Cmd
	m.sell.inputs[m.sell.focus], cmd = m.sell.inputs[m.sell.focus].Update(msg)
	return m, cmd
}

func (m Model) submitListing() (tea.Model, tea.Cmd) {
	if m.sell.busy {
		return m, nil
	}

	name := strings.TrimSpace(m.sell.inputs[0].Value())
	priceText := strings.TrimSpace(m.sell.inputs[1].Value())
	category := strings.TrimSpace(m.sell.inputs[2].Value())
	description := strings.TrimSpace(m.sell.inputs[3].Value())
	imageURL := strings.TrimSpace(m.sell.inputs[4].Value())

	if name == "" || priceText == "" || category == "" {
		m.setError("name, price and category are required")
		return m, nil
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || price <= 0 {
		m.setError("price must be a positive number")
		return m, nil
	}

	m.sell.busy = true
	m.setStatus("creating listing...")
	return m, createProductCmd(m.ctx, m.client, m.sell.seq, api.NewProduct{
		Name:        name,
		Price:       price,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
	})
}

func (m *Model) focusSellInput(idx int) {
	n := len(m.sell.inputs)
	if idx < 0 {
		idx = n - 1
	}
	if idx >= n {
		idx = 0
	}
	m.sell.inputs[m.sell.focus].Blur()
	m.sell.focus = idx
	m.sell.inputs[idx].Focus()
}

func (m *Model) resetSellForm() {
	m.sell.editing = false
	m.sell.inputs = newSellInputs()
	m.sell.focus = 0
	m.sell.busy = false
}

// renderSell renders the listings manager or the new-listing form.
func (m Model) renderSell() string {
	actor, ok := m.session.Actor()
	if !ok {
		return m.styles.MutedText.Render("log in as a seller to manage listings (press 4)")
	}
	if !actor.CanSell() && !actor.CanModerate() {
		return m.styles.MutedText.Render("your account cannot sell; ask for a seller role")
	}

	if m.sell.editing {
		return m.renderSellForm()
	}

	listings := m.myListings()

	var b strings.Builder
	if actor.CanModerate() {
		b.WriteString(m.styles.Accent.Render("All listings (moderator)"))
	} else {
		b.WriteString(m.styles.Accent.Render("My listings"))
	}
	b.WriteString("\n\n")

	if len(listings) == 0 {
		b.WriteString(m.styles.MutedText.Render("no listings yet, press n to create one"))
		return b.String()
	}

	visible := m.listWindow(len(listings), m.sell.selected)
	for i := visible.start; i < visible.end; i++ {
		p := listings[i]
		marker := "  "
		if i == m.sell.selected {
			marker = "> "
		}
		row := fmt.Sprintf("%s%-40s %10s  %d likes", marker,
			truncate(p.Name, 40), formatPrice(p.Price), len(p.Likes))
		if i == m.sell.selected {
			b.WriteString(m.styles.Selected.Render(row))
		} else {
			b.WriteString(m.styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if actor.CanSell() {
		b.WriteString(m.styles.MutedText.Render("n new listing  d delete"))
	} else {
		b.WriteString(m.styles.MutedText.Render("d delete"))
	}
	return b.String()
}

func (m Model) renderSellForm() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("New listing"))
	b.WriteString("\n\n")

	for i := range m.sell.inputs {
		marker := "  "
		if i == m.sell.focus {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(m.sell.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.sell.busy {
		b.WriteString(m.styles.MutedText.Render("working..."))
	} else {
		b.WriteString(m.styles.MutedText.Render("enter submit  tab next field  esc cancel"))
	}
	return b.String()
}
