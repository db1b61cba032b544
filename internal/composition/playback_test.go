package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetCurrentTime_Clamps(t *testing.T) {
	s := newTestStore(t)

	s.SetCurrentTime(150)
	assert.Equal(t, 150.0, s.CurrentTime())

	s.SetCurrentTime(-20)
	assert.Equal(t, 0.0, s.CurrentTime())

	s.SetCurrentTime(1e6)
	assert.Equal(t, 300.0, s.CurrentTime())
}

func TestPlay_ForcesPlayMode(t *testing.T) {
	s := newTestStore(t)

	s.Play()
	assert.Equal(t, ModePlay, s.Mode())
	assert.True(t, s.IsPlaying())
}

func TestPlay_RewindsAtEnd(t *testing.T) {
	s := newTestStore(t)
	s.SetCurrentTime(300)

	s.Play()
	assert.Equal(t, 0.0, s.CurrentTime())
	assert.True(t, s.IsPlaying())
}

func TestPause_KeepsPlayMode(t *testing.T) {
	s := newTestStore(t)
	s.Play()

	s.Pause()
	assert.False(t, s.IsPlaying())
	assert.Equal(t, ModePlay, s.Mode())
}

func TestSetMode_EditStopsPlayback(t *testing.T) {
	s := newTestStore(t)
	s.Play()

	s.SetMode(ModeEdit)
	assert.False(t, s.IsPlaying())
	assert.Equal(t, ModeEdit, s.Mode())
}

func TestSetMode_RejectsUnknown(t *testing.T) {
	s := newTestStore(t)
	s.SetMode(Mode("turbo"))
	assert.Equal(t, ModeEdit, s.Mode())
}

func TestAdvance(t *testing.T) {
	s := newTestStore(t)

	// Not playing: ticks are ignored.
	s.Advance(10)
	assert.Equal(t, 0.0, s.CurrentTime())

	s.Play()
	s.Advance(0.016)
	s.Advance(0.034)
	assert.InDelta(t, 0.05, s.CurrentTime(), 1e-9)

	// Negative or zero elapsed is ignored.
	s.Advance(-5)
	assert.InDelta(t, 0.05, s.CurrentTime(), 1e-9)
}

func TestAdvance_StopsAtTimelineEnd(t *testing.T) {
	s := newTestStore(t)
	s.SetCurrentTime(299)
	s.Play()

	s.Advance(5)

	assert.Equal(t, 300.0, s.CurrentTime())
	assert.False(t, s.IsPlaying(), "clock stops at the end")
	assert.Equal(t, ModePlay, s.Mode(), "mode stays play until the user leaves it")
}
