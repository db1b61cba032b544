package composition

import "github.com/montagehq/montage/internal/geom"

// SetCurrentTime moves the playhead, clamped to the timeline. Permitted
// in any mode; scrubbing works during playback.
func (s *Store) SetCurrentTime(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTime = geom.Clamp(t, 0, s.timelineDuration)
}

// SetMode switches between edit and play. Switching to edit while
// playing stops playback. Unknown modes are refused.
func (s *Store) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !m.Valid() || m == s.mode {
		return
	}
	s.mode = m
	if m == ModeEdit && s.playing {
		s.playing = false
	}
	s.emit("mode.set", "", map[string]any{"mode": string(m)})
}

// Play starts the playback clock, forcing play mode. If the playhead is
// already at the end it rewinds to zero first.
func (s *Store) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTime >= s.timelineDuration {
		s.currentTime = 0
	}
	s.mode = ModePlay
	s.playing = true
	s.emit("playback.play", "", map[string]any{"at": s.currentTime})
}

// Pause stops the playback clock without leaving play mode.
func (s *Store) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing {
		return
	}
	s.playing = false
	s.emit("playback.pause", "", map[string]any{"at": s.currentTime})
}

// Advance moves the playhead by elapsed wall-clock seconds. Called by
// the playback runner once per tick; a no-op unless playing. Reaching
// the end of the timeline stops the clock and clamps the playhead.
func (s *Store) Advance(elapsed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing || elapsed <= 0 {
		return
	}
	s.currentTime += elapsed
	if s.currentTime >= s.timelineDuration {
		s.currentTime = s.timelineDuration
		s.playing = false
		s.emit("playback.end", "", map[string]any{"at": s.currentTime})
	}
}
