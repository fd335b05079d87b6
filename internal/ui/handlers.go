package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/engage"
)

// handleToggleDone surfaces toggle failures and, once a favorite
// toggle settles, reconciles the favorites view with the engine's
// settled flag. The flag values themselves already arrived through
// the engine's update messages.
func (m Model) handleToggleDone(msg toggleDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		// A settled un-favorite drops the row from the favorites
		// view. Failed toggles leave the list alone: the engine
		// reverted the flag and the row must stay visible.
		if msg.favorite && m.engage != nil && !m.engage.IsFavorite(msg.id) {
			m.favorites.products = removeProduct(m.favorites.products, msg.id)
			if m.favorites.selected >= len(m.favorites.products) && m.favorites.selected > 0 {
				m.favorites.selected--
			}
		}
		return m, nil
	}
	if errors.Is(msg.err, engage.ErrLoginRequired) {
		m.setError("log in to save favorites and likes (press 4)")
		return m, nil
	}
	if errors.Is(msg.err, engage.ErrTogglePending) {
		// The earlier toggle is still settling; drop the repeat
		// silently rather than alarming the user.
		return m, nil
	}
	m.setError(errorText(msg.err))
	return m, nil
}

// handleProduct opens the detail view once the fetch lands, unless
// the user already navigated away.
func (m Model) handleProduct(msg productMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.detail.seq {
		return m, nil
	}
	if msg.err != nil {
		m.setError(errorText(msg.err))
		return m, nil
	}
	m.detail.product = msg.product
	m.detail.selected = 0
	m.currentView = ViewDetail

	// Seed the like state so the counter renders before any toggle.
	if m.engage != nil && msg.product != nil {
		actorID := ""
		if actor, ok := m.session.Actor(); ok {
			actorID = actor.ID
		}
		m.engage.SeedLikes(*msg.product, actorID)
	}
	return m, nil
}

func (m Model) handleComments(msg commentsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.detail.seq || m.detail.product == nil {
		return m, nil
	}
	if msg.err != nil {
		m.setError(errorText(msg.err))
		return m, nil
	}
	m.detail.product.Comments = msg.comments
	if m.detail.selected >= len(msg.comments) {
		m.detail.selected = 0
	}
	m.setStatus("comments updated")
	return m, nil
}

func (m Model) handleFavorites(msg favoritesMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.favorites.seq {
		return m, nil
	}
	if msg.err != nil {
		m.setError(errorText(msg.err))
		return m, nil
	}
	m.favorites.products = msg.products
	if m.favorites.selected >= len(msg.products) {
		m.favorites.selected = 0
	}
	return m, nil
}

func (m Model) handleCartDone(msg cartDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(errorText(msg.err))
		return m, nil
	}
	switch msg.action {
	case "add":
		m.setStatus("added to cart")
	case "remove":
		m.setStatus("removed from cart")
	case "clear":
		m.setStatus("cart cleared")
	}
	n := len(m.cart.Snapshot().Lines)
	if n > 0 && m.cartView.selected >= n {
		m.cartView.selected = n - 1
	}
	return m, nil
}

func (m Model) handleCheckout(msg checkoutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(errorText(msg.err))
		return m, nil
	}
	m.cartView.checkout = msg.url
	m.setStatus("checkout session ready, open the link below")
	return m, nil
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.auth.seq {
		return m, nil
	}
	m.auth.busy = false
	if msg.err != nil {
		m.setError(errorText(msg.err))
		return m, nil
	}

	m.setStatus(fmt.Sprintf("welcome, %s", msg.actor.Username))
	m.resetAuthForm()

	// Sellers land on their listings, everyone else on the catalog.
	if msg.actor.CanSell() {
		m.currentView = ViewSell
	} else {
		m.currentView = ViewBrowse
	}

	// Warm the authenticated stores now that a session exists.
	var cmds []tea.Cmd
	if cmd := m.loadCartCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.loadFavoritesCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSellDone(msg sellDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.sell.seq {
		return m, nil
	}
	m.sell.busy = false
	if msg.err != nil {
		m.setError(errorText(msg.err))
		return m, nil
	}
	switch msg.action {
	case "create":
		m.setStatus("listing created")
		m.resetSellForm()
	case "delete":
		m.setStatus("listing deleted")
	}
	// Refresh the catalog so the change shows up without waiting for
	// the next poll.
	return m, refreshCatalogCmd(m.ctx, m.client, m.store)
}
