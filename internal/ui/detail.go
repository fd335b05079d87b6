package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
)

// handleDetailKey processes keyboard input for the product detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.detail.product
	if p == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.detail.selected < len(p.Comments)-1 {
			m.detail.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.detail.selected > 0 {
			m.detail.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		cmd := m.toggleFavorite(p.ID)
		return m, cmd

	case key.Matches(msg, m.keys.Like):
		cmd := m.toggleLike(p.ID)
		return m, cmd

	case key.Matches(msg, m.keys.AddCart):
		cmd := m.addToCart(p.ID)
		return m, cmd

	case key.Matches(msg, m.keys.Checkout):
		// Buy now: a checkout session for just this product.
		if !m.authenticated() {
			m.setError("log in to check out (press 4)")
			return m, nil
		}
		line := api.CheckoutLine{Name: p.Name, Price: p.Price, Quantity: 1}
		m.setStatus("creating checkout session...")
		return m, checkoutCmd(m.ctx, m.client, []api.CheckoutLine{line})

	case key.Matches(msg, m.keys.Comment):
		if !m.authenticated() {
			m.setError("log in to comment (press 4)")
			return m, nil
		}
		m.detail.commenting = true
		m.detail.comment.Reset()
		m.detail.comment.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		return m.deleteSelectedComment()
	}

	return m, nil
}

// handleCommentKey routes input into the comment box.
func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.detail.commenting = false
		m.detail.comment.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.detail.comment.Value())
		m.detail.commenting = false
		m.detail.comment.Blur()
		if text == "" {
			return m, nil
		}
		if m.detail.product == nil {
			return m, nil
		}
		return m, addCommentCmd(m.ctx, m.engage, m.detail.seq, m.detail.product.ID, text)
	}

	var cmd tea.Cmd
	m.detail.comment, cmd = m.detail.comment.Update(msg)
	return m, cmd
}

// deleteSelectedComment removes the comment under the cursor when the
// actor wrote it or can moderate.
func (m Model) deleteSelectedComment() (tea.Model, tea.Cmd) {
	p := m.detail.product
	if p == nil || len(p.Comments) == 0 || m.detail.selected >= len(p.Comments) {
		return m, nil
	}
	actor, ok := m.session.Actor()
	if !ok {
		m.setError("log in to manage comments (press 4)")
		return m, nil
	}
	c := p.Comments[m.detail.selected]
	if c.UserID != actor.ID && !actor.CanModerate() {
		m.setError("you can only delete your own comments")
		return m, nil
	}
	return m, deleteCommentCmd(m.ctx, m.engage, m.detail.seq, p.ID, c.ID)
}

// renderDetail renders the open product.
func (m Model) renderDetail() string {
	p := m.detail.product
	if p == nil {
		return m.styles.MutedText.Render("loading product...")
	}

	var b strings.Builder

	b.WriteString(m.styles.Accent.Render(p.Name))
	b.WriteString("\n")

	price := formatPrice(effectivePrice(*p))
	if p.Discount > 0 {
		price += "  " + m.styles.MutedText.Render(formatPrice(p.Price)) +
			"  " + m.styles.Warning.Render(fmt.Sprintf("-%.0f%%", p.Discount))
	}
	b.WriteString(m.styles.Text.Render(price))
	b.WriteString("\n\n")

	var facts []string
	if p.Category != "" {
		facts = append(facts, p.Category)
	}
	if len(p.Sizes) > 0 {
		facts = append(facts, "sizes: "+strings.Join(p.Sizes, ", "))
	}
	if len(p.Colors) > 0 {
		facts = append(facts, "colors: "+strings.Join(p.Colors, ", "))
	}
	if p.Secondhand {
		facts = append(facts, "pre-owned")
	}
	if len(facts) > 0 {
		b.WriteString(m.styles.MutedText.Render(strings.Join(facts, "  ·  ")))
		b.WriteString("\n\n")
	}

	if p.Description != "" {
		b.WriteString(m.styles.Text.Render(p.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderEngageLine(*p))
	b.WriteString("\n\n")

	b.WriteString(m.renderComments(*p))

	if m.detail.commenting {
		b.WriteString("\n")
		b.WriteString(m.detail.comment.View())
	}

	return b.String()
}

// renderEngageLine shows the like counter and favorite state.
func (m Model) renderEngageLine(p api.Product) string {
	count := len(p.Likes)
	liked := false
	if m.engage != nil {
		if c, l := m.engage.LikeStatus(p.ID); c > 0 || l {
			count, liked = c, l
		}
	}

	heart := "♡"
	style := m.styles.MutedText
	if m.isFavorite(p.ID) {
		heart = "♥"
		style = m.styles.Accent
	}

	likeMark := " "
	if liked {
		likeMark = m.styles.Success.Render("✓")
	}

	return style.Render(heart+" favorite") + "   " +
		m.styles.Text.Render(fmt.Sprintf("%d likes %s", count, likeMark))
}

func (m Model) renderComments(p api.Product) string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render(fmt.Sprintf("Comments (%d)", len(p.Comments))))
	b.WriteString("\n")

	if len(p.Comments) == 0 {
		b.WriteString(m.styles.MutedText.Render("no comments yet, press c to write one"))
		return b.String()
	}

	for i, c := range p.Comments {
		marker := "  "
		if i == m.detail.selected {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  %s", marker,
			m.styles.MutedText.Render(c.Username),
			m.styles.Text.Render(truncate(c.Text, 70)))
		if i == m.detail.selected {
			line = m.styles.Selected.Render(fmt.Sprintf("%s%s  %s", marker, c.Username, truncate(c.Text, 70)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
