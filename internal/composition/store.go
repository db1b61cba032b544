package composition

import (
	"log/slog"
	"sync"

	"github.com/montagehq/montage/internal/catalog"
)

// Composition defaults. The timeline length is fixed per session; clip
// volume and fallback durations match the original editor's behavior.
const (
	DefaultTimelineDuration   = 300.0
	DefaultClipVolume         = 0.8
	DefaultMusicDuration      = 120.0
	DefaultVisualClipDuration = 5.0
)

// trackLayerStride separates track layers in the effective stacking
// value so per-asset z-indices can never cross a track boundary.
const trackLayerStride = 1000

// Event describes one applied mutation, stamped with a store-local
// monotonic sequence number.
type Event struct {
	Seq      int64
	Op       string
	EntityID string
	Detail   map[string]any
}

// EventSink receives applied mutations. Implemented by journal.Journal;
// a nil sink disables recording. Refused operations are never reported.
type EventSink interface {
	Record(Event)
}

// Store owns all composition state for one editing session.
//
// The logical model is single-writer: pointer events and clock ticks are
// resolved one at a time. The mutex exists because the playback runner
// ticks from its own goroutine; it makes each mutation atomic per event,
// which is all the ordering contract requires.
type Store struct {
	mu      sync.Mutex
	library *catalog.Catalog
	ids     IDGenerator
	log     *slog.Logger
	sink    EventSink
	seq     int64

	assets           []CanvasAsset // slice order is z order, back to front
	audioTracks      []AudioTrack
	contentTracks    []ContentTrack
	selected         Selection
	currentTime      float64
	timelineDuration float64
	mode             Mode
	playing          bool
}

// Option configures a Store at construction.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator, typically with a
// deterministic one in tests.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithEventSink attaches a sink that records every applied mutation.
func WithEventSink(sink EventSink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithTimelineDuration overrides the session timeline length in seconds.
// Non-positive values are ignored.
func WithTimelineDuration(seconds float64) Option {
	return func(s *Store) {
		if seconds > 0 {
			s.timelineDuration = seconds
		}
	}
}

// WithAudioTracks replaces the default audio track ids (A1, A2).
func WithAudioTracks(ids ...string) Option {
	return func(s *Store) {
		s.audioTracks = make([]AudioTrack, len(ids))
		for i, id := range ids {
			s.audioTracks[i] = AudioTrack{ID: id}
		}
	}
}

// WithContentTracks replaces the default content track ids (V1, V2).
func WithContentTracks(ids ...string) Option {
	return func(s *Store) {
		s.contentTracks = make([]ContentTrack, len(ids))
		for i, id := range ids {
			s.contentTracks[i] = ContentTrack{ID: id}
		}
	}
}

// New creates a store for one editing session. The library catalog is
// required and never mutated.
func New(library *catalog.Catalog, opts ...Option) *Store {
	s := &Store{
		library:          library,
		ids:              UUIDGenerator{},
		log:              slog.Default(),
		timelineDuration: DefaultTimelineDuration,
		audioTracks:      []AudioTrack{{ID: "A1"}, {ID: "A2"}},
		contentTracks:    []ContentTrack{{ID: "V1"}, {ID: "V2"}},
		mode:             ModeEdit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Library returns the catalog this store resolves library ids against.
func (s *Store) Library() *catalog.Catalog {
	return s.library
}

// Assets returns a snapshot of all canvas assets, back to front.
func (s *Store) Assets() []CanvasAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CanvasAsset, len(s.assets))
	for i, a := range s.assets {
		out[i] = cloneAsset(a)
	}
	return out
}

// Asset returns a snapshot of one canvas asset.
func (s *Store) Asset(id string) (CanvasAsset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.assetIndex(id); i >= 0 {
		return cloneAsset(s.assets[i]), true
	}
	return CanvasAsset{}, false
}

// AudioTracks returns a snapshot of all audio tracks.
func (s *Store) AudioTracks() []AudioTrack {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AudioTrack, len(s.audioTracks))
	for i, t := range s.audioTracks {
		out[i] = t
		out[i].Clips = append([]AudioClip(nil), t.Clips...)
	}
	return out
}

// ContentTracks returns a snapshot of all content tracks.
func (s *Store) ContentTracks() []ContentTrack {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ContentTrack, len(s.contentTracks))
	for i, t := range s.contentTracks {
		out[i] = t
		out[i].Clips = append([]ContentClip(nil), t.Clips...)
	}
	return out
}

// Selected returns the current selection.
func (s *Store) Selected() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// CurrentTime returns the playback position in seconds.
func (s *Store) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime
}

// TimelineDuration returns the fixed session timeline length in seconds.
func (s *Store) TimelineDuration() float64 {
	return s.timelineDuration
}

// Mode returns the current interaction mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// IsPlaying reports whether the playback clock is advancing.
func (s *Store) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Select sets the selection. Always permitted, independent of mode.
// Unknown targets are accepted verbatim; render surfaces resolve them
// against snapshots and treat dangling references as empty.
func (s *Store) Select(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = sel
}

// emit stamps and records an applied mutation. Callers hold the lock.
func (s *Store) emit(op, entityID string, detail map[string]any) {
	s.seq++
	s.log.Debug("composition mutation", "op", op, "entity", entityID, "seq", s.seq)
	if s.sink != nil {
		s.sink.Record(Event{Seq: s.seq, Op: op, EntityID: entityID, Detail: detail})
	}
}

// assetIndex returns the slice index of an asset id, or -1. Lock held.
func (s *Store) assetIndex(id string) int {
	for i := range s.assets {
		if s.assets[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAsset(a CanvasAsset) CanvasAsset {
	if a.Timeline != nil {
		binding := *a.Timeline
		a.Timeline = &binding
	}
	return a
}
