package composition

import (
	"github.com/montagehq/montage/internal/catalog"
	"github.com/montagehq/montage/internal/geom"
)

// Mode separates structural editing from playback. Only edit mode permits
// mutations that change composition structure; playback state and flag
// toggles work in either mode.
type Mode string

const (
	ModeEdit Mode = "edit"
	ModePlay Mode = "play"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeEdit || m == ModePlay
}

// Transform places an asset on the stage. Position and size are percent
// of stage (0..100), rotation is degrees, opacity 0..1.
//
// Invariants after every mutation: x+width <= 100, y+height <= 100,
// width and height >= 5, opacity within [0, 1].
type Transform struct {
	X                   float64
	Y                   float64
	Width               float64
	Height              float64
	Rotation            float64
	Opacity             float64
	PreserveAspectRatio bool
}

/// DefaultTransform is the placement for non-background assets: a 35x35
// box at (25, 25), aspect preserved.
func DefaultTransform() Transform {
	return Transform{X: 25, Y: 25, Width: 35, Height: 35, Opacity: 1, PreserveAspectRatio: true}
}

/// FullStageTransform is the placement for background assets: the whole
// stage, aspect not preserved.
func FullStageTransform() Transform {
	return Transform{Width: geom.StageMax, Height: geom.StageMax, Opacity: 1}
}

// TransformPatch is a partial transform update. Nil fields are left
// untouched. Fields are applied in declaration order, each clamped
// against the transform as updated so far.
type TransformPatch struct {
	X                   *float64
	Y                   *float64
	Width               *float64
	Height              *float64
	Rotation            *float64
	Opacity             *float64
	PreserveAspectRatio *bool
}

// TimelineBinding links a canvas asset to its content clip. Start,
// Duration and TrackID mirror the clip exactly; the clip is the other
// half of the same timing fact.
type TimelineBinding struct {
	TrackID  string
	ClipID   string
	Start    float64
	Duration float64
}

// CanvasAsset is a placed instance of a library asset on the stage.
type CanvasAsset struct {
	ID           string
	LibraryID    string
	Type         catalog.AssetType
	Name         string
	MediaURL     string
	ThumbnailURL string
	Transform    Transform
	ZIndex       int // paint order within its layer, 1-based, dense
	Locked       bool
	Visible      bool
	Timeline     *TimelineBinding // nil when not time-gated
}

// AudioClip is a sound placement on an audio track. Volume ranges 0..2
// (amplification allowed); fades are seconds and non-negative.
type AudioClip struct {
	ID        string
	LibraryID string
	Name      string
	Start     float64
	Duration  float64
	Source    string
	Volume    float64
	FadeIn    float64
	FadeOut   float64
}

// ContentClip gates a canvas asset's visibility window on a content
// track. CanvasAssetID is a back-reference, never ownership.
type ContentClip struct {
	ID            string
	LibraryID     string
	CanvasAssetID string
	Name          string
	Start         float64
	Duration      float64
	Kind          catalog.AssetType
	ThumbnailURL  string
}

// AudioClipPatch is a partial audio clip update.
type AudioClipPatch struct {
	Name     *string
	Start    *float64
	Duration *float64
	Volume   *float64
	FadeIn   *float64
	FadeOut  *float64
}

// ContentClipPatch is a partial content clip update. Timing changes are
// propagated to the bound canvas asset in the same mutation.
type ContentClipPatch struct {
	Name     *string
	Start    *float64
	Duration *float64
}

// AudioTrack holds audio clips in insertion order. Clips may overlap;
// no packing is enforced. A locked track refuses all clip mutation and
// cannot become a drag destination.
type AudioTrack struct {
	ID     string
	Clips  []AudioClip
	Muted  bool
	Solo   bool
	Locked bool
}

// ContentTrack holds content clips in insertion order. Track order is
// paint order: earlier tracks render in front of later ones.
type ContentTrack struct {
	ID     string
	Clips  []ContentClip
	Hidden bool
	Locked bool
}

// SelectionKind tags the variant of a selection.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionCanvas
	SelectionAudio
)

// Selection references at most one entity. Content clips are selected
// indirectly through their bound canvas asset, so there is no content
// variant.
type Selection struct {
	Kind SelectionKind
	ID   string
}

// NoSelection is the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// CanvasSelection selects a canvas asset.
func CanvasSelection(id string) Selection {
	return Selection{Kind: SelectionCanvas, ID: id}
}

// AudioSelection selects an audio clip.
func AudioSelection(id string) Selection {
	return Selection{Kind: SelectionAudio, ID: id}
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.Kind == SelectionNone
}
