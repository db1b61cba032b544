// Package playback drives the composition clock in real time. The store
// itself only knows how to advance by an elapsed amount; the runner owns
// the goroutine and the wall clock that produce those amounts.
package playback

import (
	"context"
	"log/slog"
	"time"

	"github.com/montagehq/montage/internal/composition"
)

// DefaultInterval approximates a 60Hz frame tick.
const DefaultInterval = 16 * time.Millisecond

// Runner ticks a store's playback clock from its own goroutine. Ticks
// while the store is paused or in edit mode are absorbed by the store,
// so the runner can stay alive for the whole session.
type Runner struct {
	store    *composition.Store
	log      *slog.Logger
	interval time.Duration
	now      func() time.Time
}

// Option configures a Runner at construction.
type Option func(*Runner)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithInterval overrides the tick interval. Non-positive values are
// ignored.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithNowFunc replaces the wall clock, typically with a manual clock in
// tests.
func WithNowFunc(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner for the given store.
func NewRunner(store *composition.Store, opts ...Option) *Runner {
	r := &Runner{
		store:    store,
		log:      slog.Default(),
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run ticks the store until the context is cancelled. Elapsed time is
// measured between ticks rather than assumed from the interval, so a
// late tick still advances playback by the real amount.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Debug("playback runner started", "interval", r.interval)
	last := r.now()
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("playback runner stopped")
			return ctx.Err()
		case <-ticker.C:
			last = r.tick(last)
		}
	}
}

// tick advances the store by the wall time elapsed since last and
// returns the new reference instant.
func (r *Runner) tick(last time.Time) time.Time {
	now := r.now()
	r.store.Advance(now.Sub(last).Seconds())
	return now
}
