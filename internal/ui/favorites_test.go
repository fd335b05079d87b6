package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/engage"
	"github.com/restyle/restyle/internal/session"
)

type fakeAuthClient struct {
	user *api.User
}

func (f *fakeAuthClient) Me(ctx context.Context) (*api.User, error) {
	return f.user, nil
}

func (f *fakeAuthClient) LogIn(ctx context.Context, email, password string) (*api.User, error) {
	return f.user, nil
}

func (f *fakeAuthClient) SignUp(ctx context.Context, username, email, password string) (*api.User, error) {
	return f.user, nil
}

func (f *fakeAuthClient) LogOut(ctx context.Context) error { return nil }

func (f *fakeAuthClient) SetToken(token string) {}

type fakeEngageClient struct {
	favorites []api.Product
	favResult api.FavoriteResult
	favErr    error
}

func (f *fakeEngageClient) MyFavorites(ctx context.Context) ([]api.Product, error) {
	return f.favorites, nil
}

func (f *fakeEngageClient) ToggleFavorite(ctx context.Context, id string) (api.FavoriteResult, error) {
	return f.favResult, f.favErr
}

func (f *fakeEngageClient) ToggleLike(ctx context.Context, id string) (api.LikeResult, error) {
	return api.LikeResult{}, nil
}

func (f *fakeEngageClient) AddComment(ctx context.Context, id, text string) ([]api.Comment, error) {
	return nil, nil
}

func (f *fakeEngageClient) DeleteComment(ctx context.Context, id, commentID string) ([]api.Comment, error) {
	return nil, nil
}

// newFavoritesModel builds a signed-in model sitting on the favorites
// view with the fake's favorites loaded.
func newFavoritesModel(t *testing.T, client *fakeEngageClient) Model {
	t.Helper()

	resolver := session.New(&fakeAuthClient{
		user: &api.User{ID: "u1", Username: "ana", Role: "buyer"},
	})
	resolver.Resolve(context.Background())

	engine := engage.New(client, func() bool { return true })
	if _, err := engine.LoadFavorites(context.Background()); err != nil {
		t.Fatalf("LoadFavorites returned error: %v", err)
	}

	m := New(Options{Session: resolver, Engage: engine})
	m.currentView = ViewFavorites
	m.favorites.products = client.favorites
	return m
}

func favoriteKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}
}

func TestFavoritesRowRemovedOnlyAfterSettledUnfavorite(t *testing.T) {
	t.Parallel()

	client := &fakeEngageClient{
		favorites: []api.Product{{ID: "p1", Name: "Coat"}},
		favResult: api.FavoriteResult{Favorited: false},
	}
	m := newFavoritesModel(t, client)

	updated, cmd := m.Update(favoriteKey())
	m = updated.(Model)

	// The request has not settled yet; the row must still render.
	if len(m.favorites.products) != 1 {
		t.Fatal("row dropped before the toggle settled")
	}
	if cmd == nil {
		t.Fatal("no toggle command issued")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if len(m.favorites.products) != 0 {
		t.Errorf("settled un-favorite left the row: %+v", m.favorites.products)
	}
}

func TestFavoritesRowKeptWhenUnfavoriteFails(t *testing.T) {
	t.Parallel()

	client := &fakeEngageClient{
		favorites: []api.Product{{ID: "p1", Name: "Coat"}},
		favErr:    errors.New("backend unavailable"),
	}
	m := newFavoritesModel(t, client)

	updated, cmd := m.Update(favoriteKey())
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("no toggle command issued")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if len(m.favorites.products) != 1 {
		t.Errorf("failed un-favorite removed the row: %+v", m.favorites.products)
	}
	if !m.engage.IsFavorite("p1") {
		t.Error("engine did not revert the flag after the failure")
	}
	if m.status == "" || !m.statusErr {
		t.Error("expected the failure to surface in the status line")
	}
}

func TestFavoritesLikeDoesNotRemoveRow(t *testing.T) {
	t.Parallel()

	client := &fakeEngageClient{
		favorites: []api.Product{{ID: "p1", Name: "Coat"}},
	}
	m := newFavoritesModel(t, client)

	// A settled like toggle reports through the same done message; it
	// must never touch the favorites list.
	updated, _ := m.Update(toggleDoneMsg{id: "p1"})
	m = updated.(Model)

	if len(m.favorites.products) != 1 {
		t.Errorf("like toggle removed a favorites row: %+v", m.favorites.products)
	}
}
