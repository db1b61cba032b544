package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montagehq/montage/internal/catalog"
	"github.com/montagehq/montage/internal/composition"
	"github.com/montagehq/montage/internal/testutil"
)

func newTestRunner(t *testing.T) (*composition.Store, *Runner, *testutil.ManualClock) {
	t.Helper()
	store := composition.New(catalog.Default(),
		composition.WithIDGenerator(testutil.NewSequentialIDGenerator("p")),
	)
	clock := testutil.NewManualClock(time.Unix(1000, 0))
	runner := NewRunner(store, WithNowFunc(clock.Now))
	return store, runner, clock
}

func TestRunner_Tick_AdvancesByElapsedWallTime(t *testing.T) {
	store, runner, clock := newTestRunner(t)
	store.Play()

	last := clock.Now()
	clock.Advance(2 * time.Second)
	last = runner.tick(last)
	assert.InDelta(t, 2.0, store.CurrentTime(), 1e-9)

	// A late tick still advances by the real elapsed amount.
	clock.Advance(500 * time.Millisecond)
	clock.Advance(500 * time.Millisecond)
	runner.tick(last)
	assert.InDelta(t, 3.0, store.CurrentTime(), 1e-9)
}

func TestRunner_Tick_IgnoredWhilePaused(t *testing.T) {
	store, runner, clock := newTestRunner(t)

	last := clock.Now()
	clock.Advance(5 * time.Second)
	runner.tick(last)

	assert.Equal(t, 0.0, store.CurrentTime(), "the store absorbs ticks while paused")
}

func TestRunner_Tick_StopsAtTimelineEnd(t *testing.T) {
	store, runner, clock := newTestRunner(t)
	store.SetCurrentTime(299)
	store.Play()

	last := clock.Now()
	clock.Advance(10 * time.Second)
	runner.tick(last)

	assert.Equal(t, 300.0, store.CurrentTime())
	assert.False(t, store.IsPlaying())
}

func TestRunner_Run_StopsOnCancel(t *testing.T) {
	store, _, _ := newTestRunner(t)
	runner := NewRunner(store, WithInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop on cancel")
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	store, _, _ := newTestRunner(t)
	r := NewRunner(store)
	assert.Equal(t, DefaultInterval, r.interval)
	assert.NotNil(t, r.now)
}
