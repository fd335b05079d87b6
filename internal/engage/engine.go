package engage

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/restyle/restyle/internal/api"
)

// Sentinel errors for the UX-gating paths.
var (
	// ErrLoginRequired means the actor is anonymous: nothing was
	// sent and nothing was flipped. The UI surfaces a login prompt.
	ErrLoginRequired = errors.New("log in to do that")

	// ErrTogglePending means a toggle for the same item is still in
	// flight and this one was rejected.
	ErrTogglePending = errors.New("toggle already in flight")

	// ErrEmptyComment rejects blank comment submissions locally.
	ErrEmptyComment = errors.New("comment text is empty")
)

// Client is the slice of the API client the engine needs.
// Implemented by *api.Client.
type Client interface {
	MyFavorites(ctx context.Context) ([]api.Product, error)
	ToggleFavorite(ctx context.Context, id string) (api.FavoriteResult, error)
	ToggleLike(ctx context.Context, id string) (api.LikeResult, error)
	AddComment(ctx context.Context, id, text string) ([]api.Comment, error)
	DeleteComment(ctx context.Context, id, commentID string) ([]api.Comment, error)
}

var _ Client = (*api.Client)(nil)

// favState is the per-item favorite machine: Settled when pending is
// false, Pending(previous, value) when true.
type favState struct {
	value    bool
	previous bool
	pending  bool
}

// likeState mirrors favState for the like counter pair.
type likeState struct {
	count    int
	liked    bool
	prev     likeValue
	pending  bool
	haveSeen bool
}

type likeValue struct {
	count int
	liked bool
}

// Engine drives the optimistic toggles. All methods are safe for
// concurrent use; the blocking network call runs outside the lock.
type Engine struct {
	client Client

	// authed reports whether a server session exists. Anonymous
	// actors are rejected before any optimistic update.
	authed func() bool

	mu        sync.Mutex
	favorites map[string]*favState
	likes     map[string]*likeState

	onFavorite func(id string, favorited bool)
	onLike     func(id string, count int, liked bool)
}

// New builds an Engine. authed must be non-nil.
func New(client Client, authed func() bool) *Engine {
	return &Engine{
		client:    client,
		authed:    authed,
		favorites: make(map[string]*favState),
		likes:     make(map[string]*likeState),
	}
}

// OnFavorite installs the broadcast listener for favorite changes.
// It fires once with the proposed value and once with the settled one.
func (e *Engine) OnFavorite(fn func(id string, favorited bool)) {
	e.onFavorite = fn
}

// OnLike installs the broadcast listener for like changes.
func (e *Engine) OnLike(fn func(id string, count int, liked bool)) {
	e.onLike = fn
}

// LoadFavorites fetches the actor's favorites and replaces the
// settled state with the server's list: ids absent from the response
// are no longer favorites. Entries with a toggle still in flight are
// carried over untouched and settle on their own. Returns the full
// products for the favorites view.
func (e *Engine) LoadFavorites(ctx context.Context) ([]api.Product, error) {
	products, err := e.client.MyFavorites(ctx)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	next := make(map[string]*favState, len(products))
	for id, st := range e.favorites {
		if st.pending {
			next[id] = st
		}
	}
	for _, p := range products {
		if next[p.ID] != nil {
			continue
		}
		next[p.ID] = &favState{value: true}
	}
	e.favorites = next
	e.mu.Unlock()
	return products, nil
}

// SeedLikes records the settled like state for a product as fetched
// with the catalog.
func (e *Engine) SeedLikes(p api.Product, actorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st := e.likes[p.ID]; st != nil && st.pending {
		return
	}
	e.likes[p.ID] = &likeState{count: len(p.Likes), liked: p.LikedBy(actorID), haveSeen: true}
}

// IsFavorite returns the current (possibly optimistic) favorite flag.
func (e *Engine) IsFavorite(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.favorites[id]
	return st != nil && st.value
}

// LikeStatus returns the current (possibly optimistic) like pair.
func (e *Engine) LikeStatus(id string) (count int, liked bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.likes[id]
	if st == nil {
		return 0, false
	}
	return st.count, st.liked
}

// ToggleFavorite flips the favorite flag for id optimistically, sends
// the request, and settles at the server's answer or reverts. The
// blocking call happens on the caller's goroutine; run it from a
// background command, not the render loop.
func (e *Engine) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if !e.authed() {
		return false, ErrLoginRequired
	}

	e.mu.Lock()
	st := e.favorites[id]
	if st == nil {
		st = &favState{}
		e.favorites[id] = st
	}
	if st.pending {
		current := st.value
		e.mu.Unlock()
		return current, ErrTogglePending
	}
	proposed := !st.value
	st.previous = st.value
	st.value = proposed
	st.pending = true
	e.mu.Unlock()

	e.notifyFavorite(id, proposed)

	result, err := e.client.ToggleFavorite(ctx, id)

	e.mu.Lock()
	st.pending = false
	if err != nil {
		st.value = st.previous
	} else {
		st.value = result.Favorited
	}
	settled := st.value
	e.mu.Unlock()

	e.notifyFavorite(id, settled)
	if err != nil {
		return settled, err
	}
	return settled, nil
}

// ToggleLike flips the like pair optimistically, then replaces both
// count and flag with the server's response values; they are never
// locally incremented and trusted.
func (e *Engine) ToggleLike(ctx context.Context, id string) (int, bool, error) {
	if !e.authed() {
		return 0, false, ErrLoginRequired
	}

	e.mu.Lock()
	st := e.likes[id]
	if st == nil {
		st = &likeState{}
		e.likes[id] = st
	}
	if st.pending {
		count, liked := st.count, st.liked
		e.mu.Unlock()
		return count, liked, ErrTogglePending
	}
	st.prev = likeValue{count: st.count, liked: st.liked}
	if st.liked {
		st.liked = false
		if st.count > 0 {
			st.count--
		}
	} else {
		st.liked = true
		st.count++
	}
	st.pending = true
	proposedCount, proposedLiked := st.count, st.liked
	e.mu.Unlock()

	e.notifyLike(id, proposedCount, proposedLiked)

	result, err := e.client.ToggleLike(ctx, id)

	e.mu.Lock()
	st.pending = false
	if err != nil {
		st.count = st.prev.count
		st.liked = st.prev.liked
	} else {
		st.count = result.LikesCount
		st.liked = result.Liked
	}
	count, liked := st.count, st.liked
	e.mu.Unlock()

	e.notifyLike(id, count, liked)
	if err != nil {
		return count, liked, err
	}
	return count, liked, nil
}

// AddComment posts a comment and returns the server's full comment
// list for the product. No optimistic step: the list is replaced
// wholesale from the response.
func (e *Engine) AddComment(ctx context.Context, id, text string) ([]api.Comment, error) {
	if !e.authed() {
		return nil, ErrLoginRequired
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyComment
	}
	return e.client.AddComment(ctx, id, trimmed)
}

// DeleteComment removes a comment and returns the remaining list.
func (e *Engine) DeleteComment(ctx context.Context, id, commentID string) ([]api.Comment, error) {
	if !e.authed() {
		return nil, ErrLoginRequired
	}
	return e.client.DeleteComment(ctx, id, commentID)
}

func (e *Engine) notifyFavorite(id string, favorited bool) {
	if e.onFavorite != nil {
		e.onFavorite(id, favorited)
	}
}

func (e *Engine) notifyLike(id string, count int, liked bool) {
	if e.onLike != nil {
		e.onLike(id, count, liked)
	}
}
