package interaction

import (
	"log/slog"

	"github.com/samber/lo"

	"github.com/montagehq/montage/internal/composition"
	"github.com/montagehq/montage/internal/geom"
)

// trackTolerance widens track hit regions by a few pixels so a drag
// hovering exactly on a boundary does not flicker between tracks.
const trackTolerance = 12.0

// session is one in-flight drag, keyed by pointer id.
type session struct {
	kind       TargetKind
	mode       DragMode
	targetID   string
	trackIndex int // reference track for clip drags, updated mid-drag

	startX float64
	startY float64

	origin composition.Transform // canvas drags
	aspect float64               // width/height at press time

	originStart    float64 // clip drags
	originDuration float64
}

// Engine is the pointer-driven interaction state machine. One engine
// serves one store; render surfaces feed it events and keep its stage
// and timeline metrics current as layout changes.
type Engine struct {
	store    *composition.Store
	log      *slog.Logger
	stage    geom.StageRect
	timeline TimelineMetrics
	sessions map[int]*session
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithStage sets the initial stage rectangle.
func WithStage(r geom.StageRect) Option {
	return func(e *Engine) { e.stage = r }
}

// WithTimelineMetrics sets the initial timeline viewport geometry.
func WithTimelineMetrics(m TimelineMetrics) Option {
	return func(e *Engine) { e.timeline = m }
}

// New creates an interaction engine bound to a store.
func New(store *composition.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		log:      slog.Default(),
		timeline: TimelineMetrics{PixelsPerSecond: geom.DefaultPixelsPerSecond},
		sessions: make(map[int]*session),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetStage updates the stage rectangle after a layout change.
func (e *Engine) SetStage(r geom.StageRect) {
	e.stage = r
}

// SetTimelineMetrics updates the timeline viewport geometry.
func (e *Engine) SetTimelineMetrics(m TimelineMetrics) {
	if m.PixelsPerSecond <= 0 {
		m.PixelsPerSecond = geom.DefaultPixelsPerSecond
	}
	m.PixelsPerSecond = geom.ClampZoom(m.PixelsPerSecond)
	e.timeline = m
}

// SetZoom adjusts the timeline zoom, clamped to the supported range.
func (e *Engine) SetZoom(pixelsPerSecond float64) {
	e.timeline.PixelsPerSecond = geom.ClampZoom(pixelsPerSecond)
}

// Zoom returns the current timeline zoom in pixels per second.
func (e *Engine) Zoom() float64 {
	return e.timeline.PixelsPerSecond
}

// Metrics returns the current timeline viewport geometry.
func (e *Engine) Metrics() TimelineMetrics {
	return e.timeline
}

// PointerDown starts a drag session if the press landed on a draggable
// target. Scrubbing works in any mode; entity drags require edit mode,
// an unlocked target, and no session already owned by this pointer.
// A successful press selects the target.
func (e *Engine) PointerDown(ev PointerEvent, target Target) {
	if _, busy := e.sessions[ev.PointerID]; busy {
		return
	}

	if target.Kind == TargetRuler {
		e.sessions[ev.PointerID] = &session{kind: TargetRuler}
		e.scrubTo(ev.X)
		return
	}

	if e.store.Mode() != composition.ModeEdit {
		return
	}

	sess := &session{
		kind:     target.Kind,
		mode:     target.Mode,
		targetID: target.ID,
		startX:   ev.X,
		startY:   ev.Y,
	}
	switch target.Kind {
	case TargetCanvasAsset:
		if target.Mode != DragMove && target.Mode != DragResize {
			return
		}
		asset, ok := e.store.Asset(target.ID)
		if !ok || asset.Locked {
			return
		}
		sess.origin = asset.Transform
		if asset.Transform.Height > 0 {
			sess.aspect = asset.Transform.Width / asset.Transform.Height
		}
		e.store.Select(composition.CanvasSelection(target.ID))
	case TargetAudioClip:
		if !clipDragMode(target.Mode) {
			return
		}
		ti, clip, ok := e.findAudioClip(target.ID)
		if !ok {
			return
		}
		sess.trackIndex = ti
		sess.originStart = clip.Start
		sess.originDuration = clip.Duration
		e.store.Select(composition.AudioSelection(target.ID))
	case TargetContentClip:
		if !clipDragMode(target.Mode) {
			return
		}
		ti, clip, ok := e.findContentClip(target.ID)
		if !ok {
			return
		}
		sess.trackIndex = ti
		sess.originStart = clip.Start
		sess.originDuration = clip.Duration
		e.store.Select(composition.CanvasSelection(clip.CanvasAssetID))
	default:
		return
	}

	e.sessions[ev.PointerID] = sess
	e.log.Debug("drag start", "pointer", ev.PointerID, "target", target.ID)
}

// PointerMove advances the drag owned by this pointer id, if any. An
// entity drag whose store has left edit mode is terminated in place.
func (e *Engine) PointerMove(ev PointerEvent) {
	sess, ok := e.sessions[ev.PointerID]
	if !ok {
		return
	}
	if sess.kind != TargetRuler && e.store.Mode() != composition.ModeEdit {
		delete(e.sessions, ev.PointerID)
		return
	}

	switch sess.kind {
	case TargetRuler:
		e.scrubTo(ev.X)
	case TargetCanvasAsset:
		e.dragCanvas(sess, ev)
	case TargetAudioClip, TargetContentClip:
		e.dragClip(sess, ev)
	}
}

// PointerUp ends the drag owned by this pointer id. Releases from other
// pointers are ignored.
func (e *Engine) PointerUp(ev PointerEvent) {
	if _, ok := e.sessions[ev.PointerID]; ok {
		delete(e.sessions, ev.PointerID)
		e.log.Debug("drag end", "pointer", ev.PointerID)
	}
}

// CancelAll drops every in-flight drag session. Entities stay at their
// last applied state.
func (e *Engine) CancelAll() {
	clear(e.sessions)
}

// ActiveDrags reports how many drag sessions are in flight.
func (e *Engine) ActiveDrags() int {
	return len(e.sessions)
}

func (e *Engine) dragCanvas(sess *session, ev PointerEvent) {
	dx := e.stage.DeltaPercentX(ev.X - sess.startX)
	dy := e.stage.DeltaPercentY(ev.Y - sess.startY)

	switch sess.mode {
	case DragMove:
		x := sess.origin.X + dx
		y := sess.origin.Y + dy
		e.store.UpdateTransform(sess.targetID, composition.TransformPatch{X: &x, Y: &y})
	case DragResize:
		w := geom.Clamp(sess.origin.Width+dx, geom.MinAssetPercent, geom.StageMax-sess.origin.X)
		h := geom.Clamp(sess.origin.Height+dy, geom.MinAssetPercent, geom.StageMax-sess.origin.Y)
		if sess.origin.PreserveAspectRatio && sess.aspect > 0 {
			// Derive height from width, clamp, then re-derive width so the
			// ratio holds without exceeding the stage.
			h = geom.Clamp(w/sess.aspect, geom.MinAssetPercent, geom.StageMax-sess.origin.Y)
			w = geom.Clamp(h*sess.aspect, geom.MinAssetPercent, geom.StageMax-sess.origin.X)
		}
		e.store.UpdateTransform(sess.targetID, composition.TransformPatch{Width: &w, Height: &h})
	}
}

func (e *Engine) dragClip(sess *session, ev PointerEvent) {
	duration := e.store.TimelineDuration()

	switch sess.mode {
	case DragMove:
		dt := geom.SecondsPerPixelDelta(ev.X-sess.startX, e.timeline.PixelsPerSecond)
		start := geom.Clamp(sess.originStart+dt, 0, duration-sess.originDuration)
		e.patchClip(sess, &start, nil)
		e.reassignTrack(sess, ev.Y)
	case DragResizeStart:
		// End stays fixed; start follows the pointer.
		end := sess.originStart + sess.originDuration
		start := geom.Clamp(e.timeAt(ev.X), 0, end-geom.MinClipSeconds)
		d := end - start
		e.patchClip(sess, &start, &d)
	case DragResizeEnd:
		// Start stays fixed; duration follows the pointer.
		d := max(geom.MinClipSeconds, e.timeAt(ev.X)-sess.originStart)
		e.patchClip(sess, nil, &d)
	}
}

// patchClip routes a timing update to the right clip variant.
func (e *Engine) patchClip(sess *session, start, duration *float64) {
	switch sess.kind {
	case TargetAudioClip:
		e.store.UpdateAudioClip(sess.targetID, composition.AudioClipPatch{Start: start, Duration: duration})
	case TargetContentClip:
		e.store.UpdateContentClip(sess.targetID, composition.ContentClipPatch{Start: start, Duration: duration})
	}
}

// reassignTrack moves a clip to the track region under the pointer when
// the drag crosses onto a different, unlocked track. The session's
// reference track follows the clip so later moves compare correctly.
func (e *Engine) reassignTrack(sess *session, pointerY float64) {
	kind := TrackAudio
	if sess.kind == TargetContentClip {
		kind = TrackContent
	}
	idx, ok := e.hitTrack(kind, pointerY)
	if !ok || idx == sess.trackIndex {
		return
	}

	var moved bool
	if sess.kind == TargetAudioClip {
		moved = e.store.MoveAudioClipToTrack(sess.targetID, idx)
	} else {
		moved = e.store.MoveContentClipToTrack(sess.targetID, idx)
	}
	if moved {
		sess.trackIndex = idx
	}
}

// hitTrack finds the first unlocked track region of the given kind whose
// vertical center is within tolerance of the pointer.
func (e *Engine) hitTrack(kind TrackKind, pointerY float64) (int, bool) {
	for _, region := range e.timeline.Regions {
		if region.Kind != kind {
			continue
		}
		center := region.Top + region.Height/2
		if abs(pointerY-center) > region.Height/2+trackTolerance {
			continue
		}
		if e.trackLocked(kind, region.Index) {
			continue
		}
		return region.Index, true
	}
	return 0, false
}

func (e *Engine) trackLocked(kind TrackKind, index int) bool {
	if kind == TrackAudio {
		tracks := e.store.AudioTracks()
		return index < 0 || index >= len(tracks) || tracks[index].Locked
	}
	tracks := e.store.ContentTracks()
	return index < 0 || index >= len(tracks) || tracks[index].Locked
}

// scrubTo sets the playhead from a pointer x position.
func (e *Engine) scrubTo(pointerX float64) {
	e.store.SetCurrentTime(e.timeAt(pointerX))
}

// timeAt converts a pointer x position to timeline seconds.
func (e *Engine) timeAt(pointerX float64) float64 {
	return geom.TimeAtPixel(
		pointerX,
		e.timeline.TrackAreaLeft,
		e.timeline.ScrollOffset,
		e.timeline.PixelsPerSecond,
		e.store.TimelineDuration(),
	)
}

// findAudioClip resolves an audio clip id against a store snapshot.
func (e *Engine) findAudioClip(clipID string) (int, composition.AudioClip, bool) {
	for ti, track := range e.store.AudioTracks() {
		if track.Locked {
			continue
		}
		clip, found := lo.Find(track.Clips, func(c composition.AudioClip) bool {
			return c.ID == clipID
		})
		if found {
			return ti, clip, true
		}
	}
	return 0, composition.AudioClip{}, false
}

// findContentClip resolves a content clip id against a store snapshot.
func (e *Engine) findContentClip(clipID string) (int, composition.ContentClip, bool) {
	for ti, track := range e.store.ContentTracks() {
		if track.Locked {
			continue
		}
		clip, found := lo.Find(track.Clips, func(c composition.ContentClip) bool {
			return c.ID == clipID
		})
		if found {
			return ti, clip, true
		}
	}
	return 0, composition.ContentClip{}, false
}

func clipDragMode(m DragMode) bool {
	return m == DragMove || m == DragResizeStart || m == DragResizeEnd
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
