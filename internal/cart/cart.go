// Package cart owns the client-side view of the shopping cart. For an
// authenticated session the server is the source of truth: every
// mutation is a round trip and the local line list is replaced
// wholesale by the server's returned snapshot, never merged.
package cart

import (
	"context"
	"sync"

	"github.com/restyle/restyle/internal/api"
)

// Client is the slice of the API client the service needs.
// Implemented by *api.Client.
type Client interface {
	GetCart(ctx context.Context) ([]api.CartItem, error)
	AddToCart(ctx context.Context, id string, quantity int) ([]api.CartItem, error)
	UpdateCartItem(ctx context.Context, id string, quantity int) ([]api.CartItem, error)
	RemoveCartItem(ctx context.Context, id string) ([]api.CartItem, error)
	ClearCart(ctx context.Context) error
}

var _ Client = (*api.Client)(nil)

// Snapshot is a copy of the cart handed to the UI. Total is derived
// from the lines on every read and never stored independently, so it
// cannot go stale against server-side price changes.
type Snapshot struct {
	Lines []api.CartItem
	Total float64
}

// Service reconciles the local cart with the server.
type Service struct {
	client Client

	mu    sync.RWMutex
	lines []api.CartItem
}

// New builds a Service around the given client.
func New(client Client) *Service {
	return &Service{client: client}
}

// Load fetches the server cart and adopts it. On failure the local
// state stays at its last-known-good value.
func (s *Service) Load(ctx context.Context) error {
	items, err := s.client.GetCart(ctx)
	if err != nil {
		return err
	}
	s.replace(items)
	return nil
}

// Add puts a product in the cart. Quantities below 1 are clamped to 1
// before anything is sent.
func (s *Service) Add(ctx context.Context, id string, quantity int) error {
	items, err := s.client.AddToCart(ctx, id, clampQuantity(quantity))
	if err != nil {
		return err
	}
	s.replace(items)
	return nil
}

// SetQuantity updates a line's quantity, clamped to a minimum of 1.
// Removing a line is an explicit Remove, never a decrement to zero.
func (s *Service) SetQuantity(ctx context.Context, id string, quantity int) error {
	items, err := s.client.UpdateCartItem(ctx, id, clampQuantity(quantity))
	if err != nil {
		return err
	}
	s.replace(items)
	return nil
}

// Remove deletes a line from the cart.
func (s *Service) Remove(ctx context.Context, id string) error {
	items, err := s.client.RemoveCartItem(ctx, id)
	if err != nil {
		return err
	}
	s.replace(items)
	return nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.client.ClearCart(ctx); err != nil {
		return err
	}
	s.replace(nil)
	return nil
}

// Snapshot returns a copy of the current lines with the derived total.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Lines: cloneLines(s.lines)}
	for _, line := range snap.Lines {
		snap.Total += line.Product.Price * float64(line.Quantity)
	}
	return snap
}

// Contains reports whether the cart holds a line for the given id.
func (s *Service) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, line := range s.lines {
		if line.Product.ID == id {
			return true
		}
	}
	return false
}

// replace adopts the server snapshot wholesale. The server guarantees
// one line per product; the first occurrence wins if it ever does not.
func (s *Service) replace(items []api.CartItem) {
	deduped := items[:0:0]
	seen := make(map[string]bool, len(items))
	for _, line := range items {
		if seen[line.Product.ID] {
			continue
		}
		seen[line.Product.ID] = true
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		deduped = append(deduped, line)
	}

	s.mu.Lock()
	s.lines = deduped
	s.mu.Unlock()
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func cloneLines(lines []api.CartItem) []api.CartItem {
	if len(lines) == 0 {
		return nil
	}
	dup := make([]api.CartItem, len(lines))
	copy(dup, lines)
	return dup
}
