package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/engage"
	"github.com/restyle/restyle/internal/session"
	"github.com/restyle/restyle/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// unauthorizedMsg fires when any request came back 401 outside the
// auth endpoints.
type unauthorizedMsg struct{}

// favoriteUpdateMsg is pushed by the engine on every favorite change,
// both the optimistic flip and the settled answer.
type favoriteUpdateMsg struct {
	id        string
	favorited bool
}

type likeUpdateMsg struct {
	id    string
	count int
	liked bool
}

// toggleDoneMsg reports the outcome of a favorite or like toggle. The
// state itself arrives through the update messages above; this one
// carries errors to the status line and, for settled un-favorites,
// lets the favorites view drop the row.
type toggleDoneMsg struct {
	id       string
	favorite bool
	err      error
}

// productMsg carries a freshly fetched product for the detail view.
type productMsg struct {
	seq     int
	product *api.Product
	err     error
}

type commentsMsg struct {
	seq      int
	comments []api.Comment
	err      error
}

type favoritesMsg struct {
	seq      int
	products []api.Product
	err      error
}

// cartDoneMsg reports a completed cart mutation. The cart service
// holds the authoritative lines; the view re-reads its snapshot.
type cartDoneMsg struct {
	action string
	err    error
}

type checkoutMsg struct {
	url string
	err error
}

type authDoneMsg struct {
	seq   int
	actor session.Actor
	err   error
}

type signOutMsg struct {
	err error
}

type sellDoneMsg struct {
	seq    int
	action string
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshCatalogCmd fetches the product list immediately instead of
// waiting for the next poll.
func refreshCatalogCmd(ctx context.Context, client *api.Client, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		products, err := client.ListProducts(reqCtx)
		store.Update(products, err)
		return snapshotMsg(store.Snapshot())
	}
}

func openProductCmd(ctx context.Context, client *api.Client, seq int, id string) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		p, err := client.GetProduct(reqCtx, id)
		return productMsg{seq: seq, product: p, err: err}
	}
}

func toggleFavoriteCmd(ctx context.Context, engine *engage.Engine, id string) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		_, err := engine.ToggleFavorite(reqCtx, id)
		return toggleDoneMsg{id: id, favorite: true, err: err}
	}
}

func toggleLikeCmd(ctx context.Context, engine *engage.Engine, id string) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		_, _, err := engine.ToggleLike(reqCtx, id)
		return toggleDoneMsg{id: id, err: err}
	}
}

func addCommentCmd(ctx context.Context, engine *engage.Engine, seq int, id, text string) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		comments, err := engine.AddComment(reqCtx, id, text)
		return commentsMsg{seq: seq, comments: comments, err: err}
	}
}

func deleteCommentCmd(ctx context.Context, engine *engage.Engine, seq int, id, commentID string) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		comments, err := engine.DeleteComment(reqCtx, id, commentID)
		return commentsMsg{seq: seq, comments: comments, err: err}
	}
}

func loadFavoritesCmd(ctx context.Context, engine *engage.Engine, seq int) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		products, err := engine.LoadFavorites(reqCtx)
		return favoritesMsg{seq: seq, products: products, err: err}
	}
}

func cartCmd(ctx context.Context, action string, op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return cartDoneMsg{action: action, err: op(reqCtx)}
	}
}

func checkoutCmd(ctx context.Context, client *api.Client, lines []api.CheckoutLine) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		url, err := client.CreateCheckoutSession(reqCtx, lines)
		return checkoutMsg{url: url, err: err}
	}
}

func logInCmd(ctx context.Context, resolver *session.Resolver, seq int, email, password string) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		actor, err := resolver.LogIn(reqCtx, email, password)
		return authDoneMsg{seq: seq, actor: actor, err: err}
	}
}

func signUpCmd(ctx context.Context, resolver *session.Resolver, seq int, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		actor, err := resolver.SignUp(reqCtx, username, email, password)
		return authDoneMsg{seq: seq, actor: actor, err: err}
	}
}

func signOutCmd(ctx context.Context, resolver *session.Resolver) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return signOutMsg{err: resolver.SignOut(reqCtx)}
	}
}

func createProductCmd(ctx context.Context, client *api.Client, seq int, p api.NewProduct) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return sellDoneMsg{seq: seq, action: "create", err: client.CreateProduct(reqCtx, p)}
	}
}

func deleteProductCmd(ctx context.Context, client *api.Client, seq int, id string, admin bool) tea.Cmd {
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		var err error
		if admin {
			err = client.DeleteProductAdmin(reqCtx, id)
		} else {
			err = client.DeleteProduct(reqCtx, id)
		}
		return sellDoneMsg{seq: seq, action: "delete", err: err}
	}
}

// loadCartCmd and loadFavoritesCmd variants bound to the model.

func (m Model) loadCartCmd() tea.Cmd {
	if !m.authenticated() || m.cart == nil {
		return nil
	}
	return cartCmd(m.ctx, "load", m.cart.Load)
}

func (m Model) loadFavoritesCmd() tea.Cmd {
	if !m.authenticated() || m.engage == nil {
		return nil
	}
	return loadFavoritesCmd(m.ctx, m.engage, m.favorites.seq)
}

// errorText converts an error into a short status-line message.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}
