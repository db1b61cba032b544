package interaction

import "github.com/montagehq/montage/internal/geom"

// PointerEvent is a raw pointer sample in surface pixel coordinates.
// PointerID distinguishes simultaneous input devices.
type PointerEvent struct {
	PointerID int
	X         float64
	Y         float64
}

// TargetKind identifies what a press landed on.
type TargetKind int

const (
	TargetCanvasAsset TargetKind = iota + 1
	TargetAudioClip
	TargetContentClip
	TargetRuler
)

// DragMode selects how pointer motion is interpreted. Canvas assets
// support move and resize; timeline clips support move and trimming
// from either edge.
type DragMode int

const (
	DragMove DragMode = iota + 1
	DragResize
	DragResizeStart
	DragResizeEnd
)

// Target names the entity under a press. ID is empty for the ruler.
type Target struct {
	Kind TargetKind
	ID   string
	Mode DragMode
}

// TrackKind distinguishes the two timeline track flavors during
// hit-testing.
type TrackKind int

const (
	TrackAudio TrackKind = iota + 1
	TrackContent
)

// TrackRegion is the vertical extent of one track row in the timeline
// view, used to resolve drag destinations.
type TrackRegion struct {
	Kind   TrackKind
	Index  int
	Top    float64
	Height float64
}

// TimelineMetrics describes the timeline viewport geometry the engine
// needs to convert pointer positions into seconds and track indices.
type TimelineMetrics struct {
	TrackAreaLeft   float64
	ScrollOffset    float64
	PixelsPerSecond float64
	Regions         []TrackRegion
}

// MarkerStep returns the ruler interval for the current zoom.
func (m TimelineMetrics) MarkerStep() float64 {
	return geom.MarkerStep(m.PixelsPerSecond)
}

// Key is the subset of keyboard input the core reacts to.
type Key int

const (
	KeyDelete Key = iota + 1
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// DropSurface identifies where a library asset was dropped.
type DropSurface int

const (
	DropOnStage DropSurface = iota + 1
	DropOnAudioTrack
	DropOnContentTrack
)

// DropEvent is a completed drag-and-drop from the asset library.
// Payload is the serialized {assetId, type} JSON produced by the
// library panel; TrackIndex is only meaningful for track surfaces.
type DropEvent struct {
	Surface    DropSurface
	TrackIndex int
	X          float64
	Y          float64
	Payload    []byte
}
