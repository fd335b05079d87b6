package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/cart"
	"github.com/restyle/restyle/internal/config"
	"github.com/restyle/restyle/internal/engage"
	"github.com/restyle/restyle/internal/localstore"
	"github.com/restyle/restyle/internal/session"
	"github.com/restyle/restyle/internal/state"
	"github.com/restyle/restyle/internal/ui"
)

// Options configure the ReStyle client application.
type Options struct {
	ConfigPath string
	Token      string // session token from an external redirect, optional
	PollEvery  int    // seconds; zero uses the configured default
}

// Run boots the storefront TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := api.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	local, err := localstore.New(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("init local store: %w", err)
	}

	resolver := session.New(client)
	if opts.Token != "" {
		resolver.BootstrapToken(ctx, opts.Token)
	} else {
		resolver.Resolve(ctx)
	}

	cartSvc := cart.New(client)
	engine := engage.New(client, func() bool {
		_, ok := resolver.Actor()
		return ok
	})

	// Warm the authenticated stores; failures are non-fatal and the
	// UI reloads lazily when the views are opened.
	if _, ok := resolver.Actor(); ok {
		if err := cartSvc.Load(ctx); err != nil {
			log.Printf("initial cart load failed: %v", err)
		}
		if _, err := engine.LoadFavorites(ctx); err != nil {
			log.Printf("initial favorites load failed: %v", err)
		}
	}

	store := &state.Store{}

	interval := time.Duration(cfg.RefreshSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	StartPoller(ctx, store, client, interval)

	// Do initial refresh to populate the store before the UI starts.
	refresh(ctx, store, client)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Session:   resolver,
		Cart:      cartSvc,
		Engage:    engine,
		LocalFavs: engage.NewLocalSet(local),
		LocalCart: cart.NewLocalList(local),
		Prefs:     local,
		PollTick:  interval,
	}
	return ui.Run(uiOpts)
}
