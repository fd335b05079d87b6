package app

import (
	"context"
	"log"
	"time"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the
// catalog store at a fixed cadence, backing off while the API is
// unreachable. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client *api.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client *api.Client) {
	products, err := client.ListProducts(ctx)
	if err != nil {
		store.Update(nil, err)
		log.Printf("catalog refresh failed: %v", err)
		return
	}
	store.Update(products, nil)
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
