package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var viewLabels = []struct {
	view  View
	label string
}{
	{ViewBrowse, "1 browse"},
	{ViewFavorites, "2 favorites"},
	{ViewCart, "3 cart"},
	{ViewAccount, "4 account"},
	{ViewSell, "5 sell"},
}

// renderHeader renders the top bar: logo, view tabs, session state.
func (m Model) renderHeader() string {
	var parts []string

	parts = append(parts, m.styles.Accent.Render("restyle"))

	for _, tab := range viewLabels {
		active := m.currentView == tab.view ||
			(m.currentView == ViewDetail && tab.view == ViewBrowse)
		if active {
			parts = append(parts, m.styles.Text.Bold(true).Render(tab.label))
		} else {
			parts = append(parts, m.styles.MutedText.Render(tab.label))
		}
	}

	if actor, ok := m.session.Actor(); ok {
		parts = append(parts, m.styles.Success.Render("@"+actor.Username))
	} else {
		parts = append(parts, m.styles.MutedText.Render("guest"))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, m.styles.Danger.Render("● offline"))
	} else if !m.lastUpdated.IsZero() {
		parts = append(parts, m.styles.MutedText.Render(m.lastUpdated.Format("15:04:05")))
	}

	line := strings.Join(parts, "  ")
	return m.styles.Header.Width(max(m.width, lipgloss.Width(line))).Render(line)
}

// renderStatusLine renders the bottom bar: last status or error plus
// a short key hint.
func (m Model) renderStatusLine() string {
	hint := "? help  q quit"

	var left string
	switch {
	case m.status == "":
		left = m.styles.MutedText.Render(m.viewHint())
	case m.statusErr:
		left = m.styles.Danger.Render(m.status)
	default:
		left = m.styles.Success.Render(m.status)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hint) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.Footer.Render(left + strings.Repeat(" ", gap) + m.styles.MutedText.Render(hint))
}

// viewHint is the idle status-line text per view.
func (m Model) viewHint() string {
	switch m.currentView {
	case ViewBrowse:
		return "enter open  f favorite  L like  a add to cart"
	case ViewDetail:
		return "f favorite  L like  a cart  c comment  x buy now  esc back"
	case ViewFavorites:
		return "enter open  f remove  a add to cart"
	case ViewCart:
		return "x checkout  enter open"
	case ViewAccount:
		return ""
	case ViewSell:
		return ""
	default:
		return ""
	}
}

// renderHelp renders the full key reference overlay.
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"1-5", "switch view"},
		{"j/k, ↓/↑", "move"},
		{"enter", "open product"},
		{"esc", "back"},
		{"/", "search"},
		{"s / S", "sort field / direction"},
		{"C", "cycle category"},
		{"M", "cycle max price"},
		{"0", "clear filters (or clear cart in cart view)"},
		{"f", "toggle favorite"},
		{"L", "toggle like"},
		{"a", "add to cart"},
		{"+ / -", "cart quantity"},
		{"d", "remove / delete"},
		{"x", "checkout"},
		{"c", "comment"},
		{"n", "new listing (sellers)"},
		{"o", "sign out (account view)"},
		{"r", "refresh catalog"},
		{"T", "cycle theme"},
		{"?", "this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.styles.Text.Render(fmt.Sprintf("%-10s", row[0])),
			m.styles.MutedText.Render(row[1])))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("press any key to close"))
	return m.styles.Panel.Render(b.String())
}
