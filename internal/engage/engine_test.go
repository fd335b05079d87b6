package engage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/localstore"
)

type fakeClient struct {
	favResult  api.FavoriteResult
	favErr     error
	likeResult api.LikeResult
	likeErr    error
	comments   []api.Comment
	commentErr error
	favorites  []api.Product

	favCalls     int
	likeCalls    int
	gotComment   string
	duringToggle func()

	// blockToggle, when set, holds the toggle request open until
	// released so a second toggle can race against it.
	blockToggle chan struct{}
}

func (f *fakeClient) MyFavorites(ctx context.Context) ([]api.Product, error) {
	return f.favorites, nil
}

func (f *fakeClient) ToggleFavorite(ctx context.Context, id string) (api.FavoriteResult, error) {
	f.favCalls++
	if f.duringToggle != nil {
		f.duringToggle()
	}
	if f.blockToggle != nil {
		<-f.blockToggle
	}
	return f.favResult, f.favErr
}

func (f *fakeClient) ToggleLike(ctx context.Context, id string) (api.LikeResult, error) {
	f.likeCalls++
	return f.likeResult, f.likeErr
}

func (f *fakeClient) AddComment(ctx context.Context, id, text string) ([]api.Comment, error) {
	f.gotComment = text
	return f.comments, f.commentErr
}

func (f *fakeClient) DeleteComment(ctx context.Context, id, commentID string) ([]api.Comment, error) {
	return f.comments, f.commentErr
}

type favEvent struct {
	id        string
	favorited bool
}

func authenticated() bool { return true }
func anonymous() bool     { return false }

func TestToggleFavorite_OptimisticThenAuthoritative(t *testing.T) {
	client := &fakeClient{favResult: api.FavoriteResult{Favorited: true}}
	e := New(client, authenticated)

	var events []favEvent
	e.OnFavorite(func(id string, favorited bool) {
		events = append(events, favEvent{id, favorited})
	})

	// The local flag must already be flipped while the request is in
	// flight, before any response arrives.
	client.duringToggle = func() {
		if !e.IsFavorite("p1") {
			t.Errorf("flag not flipped before response")
		}
	}

	settled, err := e.ToggleFavorite(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if !settled || !e.IsFavorite("p1") {
		t.Fatalf("settled = %v, want favorited", settled)
	}
	want := []favEvent{{"p1", true}, {"p1", true}}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestToggleFavorite_ServerAnswerWins(t *testing.T) {
	// A concurrent mutation elsewhere can make the server's answer
	// differ from the proposed value. The settled state is the
	// server's, not the proposal.
	client := &fakeClient{favResult: api.FavoriteResult{Favorited: false}}
	e := New(client, authenticated)

	settled, err := e.ToggleFavorite(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	if settled || e.IsFavorite("p1") {
		t.Fatalf("settled = %v, want server's false adopted", settled)
	}
}

func TestToggleFavorite_RevertsOnFailure(t *testing.T) {
	client := &fakeClient{favErr: errors.New("boom")}
	e := New(client, authenticated)

	var events []favEvent
	e.OnFavorite(func(id string, favorited bool) {
		events = append(events, favEvent{id, favorited})
	})

	settled, err := e.ToggleFavorite(context.Background(), "p1")
	if err == nil {
		t.Fatalf("ToggleFavorite error = nil, want failure")
	}
	if settled || e.IsFavorite("p1") {
		t.Fatalf("flag = %v, want reverted to pre-toggle value", settled)
	}
	// Exactly two notifications: propose, revert.
	want := []favEvent{{"p1", true}, {"p1", false}}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestToggleFavorite_AnonymousRejectedBeforeAnything(t *testing.T) {
	client := &fakeClient{}
	e := New(client, anonymous)

	notified := 0
	e.OnFavorite(func(string, bool) { notified++ })

	_, err := e.ToggleFavorite(context.Background(), "p1")
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("error = %v, want ErrLoginRequired", err)
	}
	if client.favCalls != 0 {
		t.Fatalf("request sent for anonymous actor")
	}
	if e.IsFavorite("p1") || notified != 0 {
		t.Fatalf("state touched for anonymous actor: fav=%v notified=%d", e.IsFavorite("p1"), notified)
	}
}

func TestToggleFavorite_RejectsOverlappingToggle(t *testing.T) {
	client := &fakeClient{
		favResult:   api.FavoriteResult{Favorited: true},
		blockToggle: make(chan struct{}),
	}
	e := New(client, authenticated)

	started := make(chan struct{})
	client.duringToggle = func() { close(started) }

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = e.ToggleFavorite(context.Background(), "p1")
	}()

	<-started
	_, err := e.ToggleFavorite(context.Background(), "p1")
	if !errors.Is(err, ErrTogglePending) {
		t.Fatalf("second toggle error = %v, want ErrTogglePending", err)
	}
	if client.favCalls != 1 {
		t.Fatalf("favorite calls = %d, want 1", client.favCalls)
	}

	close(client.blockToggle)
	wg.Wait()

	// After settling, toggling works again.
	client.blockToggle = nil
	client.duringToggle = nil
	if _, err := e.ToggleFavorite(context.Background(), "p1"); err != nil {
		t.Fatalf("toggle after settle returned error: %v", err)
	}
}

func TestToggleLike_ReplacedByServerValues(t *testing.T) {
	client := &fakeClient{likeResult: api.LikeResult{LikesCount: 7, Liked: true}}
	e := New(client, authenticated)
	e.SeedLikes(api.Product{ID: "p1", Likes: []string{"a", "b"}}, "me")

	count, liked, err := e.ToggleLike(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ToggleLike returned error: %v", err)
	}
	// The server said 7, not the local 2+1.
	if count != 7 || !liked {
		t.Fatalf("like = (%d,%v), want server's (7,true)", count, liked)
	}
}

func TestToggleLike_RevertsOnFailure(t *testing.T) {
	client := &fakeClient{likeErr: errors.New("boom")}
	e := New(client, authenticated)
	e.SeedLikes(api.Product{ID: "p1", Likes: []string{"me", "x"}}, "me")

	count, liked, err := e.ToggleLike(context.Background(), "p1")
	if err == nil {
		t.Fatalf("ToggleLike error = nil, want failure")
	}
	if count != 2 || !liked {
		t.Fatalf("like = (%d,%v), want pre-toggle (2,true)", count, liked)
	}
}

func TestAddComment_Validation(t *testing.T) {
	client := &fakeClient{comments: []api.Comment{{ID: "c1", Text: "nice"}}}
	e := New(client, authenticated)

	if _, err := e.AddComment(context.Background(), "p1", "   "); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("blank comment error = %v, want ErrEmptyComment", err)
	}

	comments, err := e.AddComment(context.Background(), "p1", "  nice  ")
	if err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}
	if client.gotComment != "nice" {
		t.Fatalf("sent comment = %q, want trimmed", client.gotComment)
	}
	if len(comments) != 1 || comments[0].ID != "c1" {
		t.Fatalf("comments = %#v, want server list", comments)
	}

	anon := New(client, anonymous)
	if _, err := anon.AddComment(context.Background(), "p1", "hey"); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("anonymous comment error = %v, want ErrLoginRequired", err)
	}
}

func TestLoadFavorites_SeedsSettledState(t *testing.T) {
	client := &fakeClient{favorites: []api.Product{{ID: "p1"}, {ID: "p2"}}}
	e := New(client, authenticated)

	products, err := e.LoadFavorites(context.Background())
	if err != nil {
		t.Fatalf("LoadFavorites returned error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products = %v, want 2", products)
	}
	if !e.IsFavorite("p1") || !e.IsFavorite("p2") || e.IsFavorite("p3") {
		t.Fatalf("seeded favorites wrong")
	}
}

func TestLoadFavorites_ReplacesStateWholesale(t *testing.T) {
	client := &fakeClient{favorites: []api.Product{{ID: "p1"}, {ID: "p2"}}}
	e := New(client, authenticated)

	if _, err := e.LoadFavorites(context.Background()); err != nil {
		t.Fatalf("LoadFavorites returned error: %v", err)
	}

	// p1 was unfavorited from another client; the next reload no
	// longer lists it and the local flag must drop with it.
	client.favorites = []api.Product{{ID: "p2"}}
	if _, err := e.LoadFavorites(context.Background()); err != nil {
		t.Fatalf("LoadFavorites returned error: %v", err)
	}

	if e.IsFavorite("p1") {
		t.Error("IsFavorite(p1) = true after a reload without p1")
	}
	if !e.IsFavorite("p2") {
		t.Error("IsFavorite(p2) = false, want true")
	}
}

func TestLoadFavorites_KeepsPendingToggle(t *testing.T) {
	client := &fakeClient{
		favResult:   api.FavoriteResult{Favorited: true},
		blockToggle: make(chan struct{}),
	}
	e := New(client, authenticated)

	started := make(chan struct{})
	client.duringToggle = func() { close(started) }

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = e.ToggleFavorite(context.Background(), "p1")
	}()

	// Reload while the toggle request is still held open. The
	// in-flight entry must survive even though the server's list
	// does not mention p1 yet.
	<-started
	client.favorites = nil
	if _, err := e.LoadFavorites(context.Background()); err != nil {
		t.Fatalf("LoadFavorites returned error: %v", err)
	}
	if !e.IsFavorite("p1") {
		t.Error("reload dropped a toggle that was still in flight")
	}

	close(client.blockToggle)
	wg.Wait()
	if !e.IsFavorite("p1") {
		t.Error("IsFavorite(p1) = false after the toggle settled true")
	}
}

func TestLocalSet_ToggleMembership(t *testing.T) {
	store, err := localstore.New(filepath.Join(t.TempDir(), "state.toml"))
	if err != nil {
		t.Fatalf("localstore.New returned error: %v", err)
	}
	set := NewLocalSet(store)

	on, err := set.Toggle("p1")
	if err != nil || !on {
		t.Fatalf("Toggle = (%v,%v), want on", on, err)
	}
	if _, err := set.Toggle("p2"); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if ids := set.IDs(); len(ids) != 2 || ids[0] != "p1" {
		t.Fatalf("IDs = %v, want insertion order [p1 p2]", ids)
	}

	off, err := set.Toggle("p1")
	if err != nil || off {
		t.Fatalf("Toggle = (%v,%v), want off", off, err)
	}
	if set.Contains("p1") || !set.Contains("p2") {
		t.Fatalf("membership after toggle wrong: %v", set.IDs())
	}
}
