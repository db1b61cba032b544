package composition

import (
	"sort"

	"github.com/montagehq/montage/internal/geom"
	"github.com/samber/lo"
)

// ClipPlacement requests where a new clip should land. Nil Start uses
// the current playback time; nil TrackIndex uses the first track.
type ClipPlacement struct {
	Start      *float64
	TrackIndex *int
}

// AddAudioClip places a music library asset on an audio track and
// selects the new clip. Refused outside edit mode, for non-audio
// library ids, for an out-of-range track index, or a locked track.
func (s *Store) AddAudioClip(libraryID string, place ClipPlacement) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit {
		return "", false
	}
	lib, ok := s.library.ByID(libraryID)
	if !ok || !lib.Type.IsAudio() {
		return "", false
	}
	ti := 0
	if place.TrackIndex != nil {
		ti = *place.TrackIndex
	}
	if ti < 0 || ti >= len(s.audioTracks) || s.audioTracks[ti].Locked {
		return "", false
	}

	start, duration := s.clampNewClip(place.Start, lib.Duration, DefaultMusicDuration)
	id := s.ids.NewID()
	track := &s.audioTracks[ti]
	track.Clips = append(track.Clips, AudioClip{
		ID:        id,
		LibraryID: lib.ID,
		Name:      lib.Name,
		Start:     start,
		Duration:  duration,
		Source:    lib.MediaURL,
		Volume:    DefaultClipVolume,
	})
	s.selected = AudioSelection(id)
	s.emit("clip.add", id, map[string]any{
		"library": lib.ID, "track": track.ID, "start": start, "duration": duration,
	})
	return id, true
}

// AddVisualClip atomically creates a canvas asset bound to a new content
// clip. All preconditions are checked before any state changes, so a
// refusal never leaves a half-created pair. Returns the content clip id.
func (s *Store) AddVisualClip(libraryID string, place ClipPlacement) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit {
		return "", false
	}
	lib, ok := s.library.ByID(libraryID)
	if !ok || !lib.Type.PlaceableOnCanvas() {
		return "", false
	}
	ti := 0
	if place.TrackIndex != nil {
		ti = *place.TrackIndex
	}
	if ti < 0 || ti >= len(s.contentTracks) || s.contentTracks[ti].Locked {
		return "", false
	}

	assetID, ok := s.addAssetLocked(libraryID, nil)
	if !ok {
		return "", false
	}
	start, duration := s.clampNewClip(place.Start, lib.Duration, DefaultVisualClipDuration)
	clipID := s.ids.NewID()
	track := &s.contentTracks[ti]
	track.Clips = append(track.Clips, ContentClip{
		ID:            clipID,
		LibraryID:     lib.ID,
		CanvasAssetID: assetID,
		Name:          lib.Name,
		Start:         start,
		Duration:      duration,
		Kind:          lib.Type,
		ThumbnailURL:  lib.ThumbnailURL,
	})
	ai := s.assetIndex(assetID)
	s.assets[ai].Timeline = &TimelineBinding{
		TrackID:  track.ID,
		ClipID:   clipID,
		Start:    start,
		Duration: duration,
	}
	s.emit("clip.add", clipID, map[string]any{
		"library": lib.ID, "track": track.ID, "asset": assetID,
		"start": start, "duration": duration,
	})
	return clipID, true
}

// UpdateAudioClip merges a partial clip update and re-clamps timing
// against the timeline. Refused outside edit mode or on a locked track.
func (s *Store) UpdateAudioClip(clipID string, patch AudioClipPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit {
		return
	}
	ti, ci := s.findAudioClip(clipID)
	if ti < 0 || s.audioTracks[ti].Locked {
		return
	}
	clip := &s.audioTracks[ti].Clips[ci]
	if patch.Name != nil {
		clip.Name = *patch.Name
	}
	if patch.Start != nil {
		clip.Start = *patch.Start
	}
	if patch.Duration != nil {
		clip.Duration = *patch.Duration
	}
	if patch.Volume != nil {
		clip.Volume = geom.Clamp(*patch.Volume, 0, 2)
	}
	if patch.FadeIn != nil {
		clip.FadeIn = max(0, *patch.FadeIn)
	}
	if patch.FadeOut != nil {
		clip.FadeOut = max(0, *patch.FadeOut)
	}
	clip.Start, clip.Duration = s.clampClipTiming(clip.Start, clip.Duration)
	s.emit("clip.update", clipID, map[string]any{
		"track": s.audioTracks[ti].ID, "start": clip.Start, "duration": clip.Duration,
	})
}

// UpdateContentClip merges a partial clip update, re-clamps timing, and
// propagates the result onto the bound canvas asset's timeline binding
// in the same mutation. Refused outside edit mode or on a locked track.
func (s *Store) UpdateContentClip(clipID string, patch ContentClipPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit {
		return
	}
	ti, ci := s.findContentClip(clipID)
	if ti < 0 || s.contentTracks[ti].Locked {
		return
	}
	clip := &s.contentTracks[ti].Clips[ci]
	if patch.Name != nil {
		clip.Name = *patch.Name
	}
	if patch.Start != nil {
		clip.Start = *patch.Start
	}
	if patch.Duration != nil {
		clip.Duration = *patch.Duration
	}
	clip.Start, clip.Duration = s.clampClipTiming(clip.Start, clip.Duration)
	s.mirrorBindingLocked(*clip, s.contentTracks[ti].ID)
	s.emit("clip.update", clipID, map[string]any{
		"track": s.contentTracks[ti].ID, "start": clip.Start, "duration": clip.Duration,
	})
}

// MoveAudioClipToTrack moves a clip to another audio track, reinserting
// it in start order (stable; ties keep insertion order). Refused when
// either track is locked, the index is out of range, or the destination
// is the source. Reports whether the move was applied.
func (s *Store) MoveAudioClipToTrack(clipID string, target int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit || target < 0 || target >= len(s.audioTracks) {
		return false
	}
	ti, ci := s.findAudioClip(clipID)
	if ti < 0 || ti == target || s.audioTracks[ti].Locked || s.audioTracks[target].Locked {
		return false
	}
	src, dst := &s.audioTracks[ti], &s.audioTracks[target]
	clip := src.Clips[ci]
	src.Clips = append(src.Clips[:ci], src.Clips[ci+1:]...)
	dst.Clips = append(dst.Clips, clip)
	sort.SliceStable(dst.Clips, func(i, j int) bool {
		return dst.Clips[i].Start < dst.Clips[j].Start
	})
	s.emit("clip.move", clipID, map[string]any{"from": src.ID, "to": dst.ID})
	return true
}

// MoveContentClipToTrack is the content variant of MoveAudioClipToTrack.
// The bound canvas asset's track id follows the clip.
func (s *Store) MoveContentClipToTrack(clipID string, target int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit || target < 0 || target >= len(s.contentTracks) {
		return false
	}
	ti, ci := s.findContentClip(clipID)
	if ti < 0 || ti == target || s.contentTracks[ti].Locked || s.contentTracks[target].Locked {
		return false
	}
	src, dst := &s.contentTracks[ti], &s.contentTracks[target]
	clip := src.Clips[ci]
	src.Clips = append(src.Clips[:ci], src.Clips[ci+1:]...)
	dst.Clips = append(dst.Clips, clip)
	sort.SliceStable(dst.Clips, func(i, j int) bool {
		return dst.Clips[i].Start < dst.Clips[j].Start
	})
	s.mirrorBindingLocked(clip, dst.ID)
	s.emit("clip.move", clipID, map[string]any{"from": src.ID, "to": dst.ID})
	return true
}

// ToggleAudioTrackLock flips an audio track's lock. Always permitted.
func (s *Store) ToggleAudioTrackLock(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.audioTrack(trackID); ok {
		t.Locked = !t.Locked
		s.emit("track.lock", trackID, map[string]any{"locked": t.Locked})
	}
}

// ToggleAudioTrackMute flips an audio track's mute. Always permitted.
func (s *Store) ToggleAudioTrackMute(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.audioTrack(trackID); ok {
		t.Muted = !t.Muted
		s.emit("track.mute", trackID, map[string]any{"muted": t.Muted})
	}
}

// ToggleAudioTrackSolo flips an audio track's solo. Always permitted.
func (s *Store) ToggleAudioTrackSolo(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.audioTrack(trackID); ok {
		t.Solo = !t.Solo
		s.emit("track.solo", trackID, map[string]any{"solo": t.Solo})
	}
}

// ToggleContentTrackLock flips a content track's lock. Always permitted.
func (s *Store) ToggleContentTrackLock(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.contentTrack(trackID); ok {
		t.Locked = !t.Locked
		s.emit("track.lock", trackID, map[string]any{"locked": t.Locked})
	}
}

// ToggleContentTrackHidden flips a content track's visibility. Always
// permitted.
func (s *Store) ToggleContentTrackHidden(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.contentTrack(trackID); ok {
		t.Hidden = !t.Hidden
		s.emit("track.hidden", trackID, map[string]any{"hidden": t.Hidden})
	}
}

// clampNewClip resolves start and duration for a fresh clip. Lock held.
func (s *Store) clampNewClip(start *float64, natural, fallback float64) (float64, float64) {
	st := s.currentTime
	if start != nil {
		st = *start
	}
	st = geom.Clamp(st, 0, s.timelineDuration-geom.MinClipSeconds)
	dur := natural
	if dur <= 0 {
		dur = fallback
	}
	dur = geom.Clamp(dur, geom.MinClipSeconds, s.timelineDuration-st)
	return st, dur
}

// clampClipTiming enforces 0 <= start, 1 <= duration,
// start+duration <= timelineDuration after a merge. Lock held.
func (s *Store) clampClipTiming(start, duration float64) (float64, float64) {
	start = geom.Clamp(start, 0, s.timelineDuration-geom.MinClipSeconds)
	duration = geom.Clamp(duration, geom.MinClipSeconds, s.timelineDuration-start)
	return start, duration
}

// mirrorBindingLocked copies a content clip's timing onto its bound
// asset. Lock held.
func (s *Store) mirrorBindingLocked(clip ContentClip, trackID string) {
	if i := s.assetIndex(clip.CanvasAssetID); i >= 0 {
		s.assets[i].Timeline = &TimelineBinding{
			TrackID:  trackID,
			ClipID:   clip.ID,
			Start:    clip.Start,
			Duration: clip.Duration,
		}
	}
}

// deleteContentClipLocked removes a content clip wherever it lives.
// Lock held.
func (s *Store) deleteContentClipLocked(clipID string) {
	ti, ci := s.findContentClip(clipID)
	if ti < 0 {
		return
	}
	track := &s.contentTracks[ti]
	track.Clips = append(track.Clips[:ci], track.Clips[ci+1:]...)
}

// findAudioClip locates a clip across all audio tracks. Lock held.
func (s *Store) findAudioClip(clipID string) (trackIdx, clipIdx int) {
	for ti := range s.audioTracks {
		_, ci, found := lo.FindIndexOf(s.audioTracks[ti].Clips, func(c AudioClip) bool {
			return c.ID == clipID
		})
		if found {
			return ti, ci
		}
	}
	return -1, -1
}

// findContentClip locates a clip across all content tracks. Lock held.
func (s *Store) findContentClip(clipID string) (trackIdx, clipIdx int) {
	for ti := range s.contentTracks {
		_, ci, found := lo.FindIndexOf(s.contentTracks[ti].Clips, func(c ContentClip) bool {
			return c.ID == clipID
		})
		if found {
			return ti, ci
		}
	}
	return -1, -1
}

func (s *Store) audioTrack(id string) (*AudioTrack, bool) {
	for i := range s.audioTracks {
		if s.audioTracks[i].ID == id {
			return &s.audioTracks[i], true
		}
	}
	return nil, false
}

func (s *Store) contentTrack(id string) (*ContentTrack, bool) {
	for i := range s.contentTracks {
		if s.contentTracks[i].ID == id {
			return &s.contentTracks[i], true
		}
	}
	return nil, false
}
