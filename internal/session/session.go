// Package session resolves the current actor against the backend and
// tracks the authentication phase for the rest of the application.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/restyle/restyle/internal/api"
)

// Phase is the resolver's lifecycle state.
type Phase int

const (
	// PhaseLoading means the bootstrap "who am I" call has not
	// completed yet.
	PhaseLoading Phase = iota
	// PhaseAnonymous means no server session exists.
	PhaseAnonymous
	// PhaseAuthenticated means the server vouched for an actor.
	PhaseAuthenticated
)

// Role is the server-assigned actor role. The client uses it only to
// gate UI affordances; the server enforces the real rules.
type Role string

// Known roles.
const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Actor identifies the authenticated user.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

// CanSell reports whether the actor may manage product listings.
func (a Actor) CanSell() bool {
	return a.Role == RoleSeller || a.Role == RoleAdmin
}

// CanModerate reports whether the actor may use admin-only operations.
func (a Actor) CanModerate() bool {
	return a.Role == RoleAdmin
}

// AuthClient is the slice of the API client the resolver needs.
// Implemented by *api.Client.
type AuthClient interface {
	Me(ctx context.Context) (*api.User, error)
	LogIn(ctx context.Context, email, password string) (*api.User, error)
	SignUp(ctx context.Context, username, email, password string) (*api.User, error)
	LogOut(ctx context.Context) error
	SetToken(token string)
}

var _ AuthClient = (*api.Client)(nil)

// Resolver owns the session state. Construct with New; all methods are
// safe for concurrent use.
type Resolver struct {
	client AuthClient

	mu    sync.RWMutex
	phase Phase
	actor Actor
}

// New builds a Resolver in the Loading phase.
func New(client AuthClient) *Resolver {
	return &Resolver{client: client, phase: PhaseLoading}
}

// Resolve performs the one-shot session bootstrap. Any failure,
// including 401, degrades to Anonymous; the resolver never guesses an
// identity.
func (r *Resolver) Resolve(ctx context.Context) Phase {
	user, err := r.client.Me(ctx)
	if err != nil || user == nil || user.ID == "" {
		r.set(PhaseAnonymous, Actor{})
		return PhaseAnonymous
	}
	r.set(PhaseAuthenticated, actorFrom(user))
	return PhaseAuthenticated
}

// BootstrapToken seeds the session cookie from an external redirect
// token, then resolves as usual.
func (r *Resolver) BootstrapToken(ctx context.Context, token string) Phase {
	if strings.TrimSpace(token) != "" {
		r.client.SetToken(token)
	}
	return r.Resolve(ctx)
}

// LogIn authenticates and, on success, adopts the returned actor.
func (r *Resolver) LogIn(ctx context.Context, email, password string) (Actor, error) {
	user, err := r.client.LogIn(ctx, email, password)
	if err != nil {
		return Actor{}, err
	}
	actor := actorFrom(user)
	if user.Token != "" {
		r.client.SetToken(user.Token)
	}
	r.set(PhaseAuthenticated, actor)
	return actor, nil
}

// SignUp registers a new account and adopts the returned actor.
func (r *Resolver) SignUp(ctx context.Context, username, email, password string) (Actor, error) {
	user, err := r.client.SignUp(ctx, username, email, password)
	if err != nil {
		return Actor{}, err
	}
	actor := actorFrom(user)
	if user.Token != "" {
		r.client.SetToken(user.Token)
	}
	r.set(PhaseAuthenticated, actor)
	return actor, nil
}

// SignOut asks the server to invalidate the session. The local state
// transitions to Anonymous regardless of the network outcome: the
// user's intent to leave is honored even when the server is down.
func (r *Resolver) SignOut(ctx context.Context) error {
	defer r.set(PhaseAnonymous, Actor{})
	return r.client.LogOut(ctx)
}

// Phase returns the current lifecycle state.
func (r *Resolver) Phase() Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

// Actor returns the authenticated actor and whether one exists.
func (r *Resolver) Actor() (Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.actor, r.phase == PhaseAuthenticated
}

func (r *Resolver) set(phase Phase, actor Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = phase
	r.actor = actor
}

func actorFrom(user *api.User) Actor {
	role := Role(strings.ToLower(strings.TrimSpace(user.Role)))
	if role == "" {
		role = RoleBuyer
	}
	return Actor{ID: user.ID, Username: user.Username, Role: role}
}
