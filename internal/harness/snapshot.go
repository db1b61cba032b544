package harness

import (
	"github.com/montagehq/montage/internal/composition"
)

// Snapshot is the serializable state of a store after a scenario run.
// Field order matters: golden files pin the rendered JSON exactly.
type Snapshot struct {
	Mode          string              `json:"mode"`
	CurrentTime   float64             `json:"currentTime"`
	Selection     *SelectionState     `json:"selection,omitempty"`
	Assets        []AssetState        `json:"assets"`
	AudioTracks   []AudioTrackState   `json:"audioTracks"`
	ContentTracks []ContentTrackState `json:"contentTracks"`
}

// SelectionState names the selected entity.
type SelectionState struct {
	Kind string `json:"kind"` // "canvas" | "audio"
	ID   string `json:"id"`
}

// AssetState is the snapshot of one canvas asset.
type AssetState struct {
	ID                  string        `json:"id"`
	Library             string        `json:"library"`
	Type                string        `json:"type"`
	Name                string        `json:"name"`
	X                   float64       `json:"x"`
	Y                   float64       `json:"y"`
	Width               float64       `json:"width"`
	Height              float64       `json:"height"`
	Rotation            float64       `json:"rotation"`
	Opacity             float64       `json:"opacity"`
	PreserveAspectRatio bool          `json:"preserveAspectRatio"`
	ZIndex              int           `json:"zIndex"`
	Visible             bool          `json:"visible"`
	Locked              bool          `json:"locked"`
	Binding             *BindingState `json:"binding,omitempty"`
}

// BindingState is the snapshot of an asset's timeline binding.
type BindingState struct {
	Track    string  `json:"track"`
	Clip     string  `json:"clip"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// AudioTrackState is the snapshot of one audio track.
type AudioTrackState struct {
	ID     string           `json:"id"`
	Locked bool             `json:"locked"`
	Muted  bool             `json:"muted"`
	Solo   bool             `json:"solo"`
	Clips  []AudioClipState `json:"clips"`
}

// AudioClipState is the snapshot of one audio clip.
type AudioClipState struct {
	ID       string  `json:"id"`
	Library  string  `json:"library"`
	Name     string  `json:"name"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Volume   float64 `json:"volume"`
	FadeIn   float64 `json:"fadeIn"`
	FadeOut  float64 `json:"fadeOut"`
}

// ContentTrackState is the snapshot of one content track.
type ContentTrackState struct {
	ID     string             `json:"id"`
	Locked bool               `json:"locked"`
	Hidden bool               `json:"hidden"`
	Clips  []ContentClipState `json:"clips"`
}

// ContentClipState is the snapshot of one content clip.
type ContentClipState struct {
	ID       string  `json:"id"`
	Library  string  `json:"library"`
	Asset    string  `json:"asset"`
	Name     string  `json:"name"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Kind     string  `json:"kind"`
}

// Capture snapshots a store's current state.
func Capture(store *composition.Store) Snapshot {
	snap := Snapshot{
		Mode:          string(store.Mode()),
		CurrentTime:   store.CurrentTime(),
		Assets:        []AssetState{},
		AudioTracks:   []AudioTrackState{},
		ContentTracks: []ContentTrackState{},
	}

	switch sel := store.Selected(); sel.Kind {
	case composition.SelectionCanvas:
		snap.Selection = &SelectionState{Kind: "canvas", ID: sel.ID}
	case composition.SelectionAudio:
		snap.Selection = &SelectionState{Kind: "audio", ID: sel.ID}
	}

	for _, a := range store.Assets() {
		state := AssetState{
			ID:                  a.ID,
			Library:             a.LibraryID,
			Type:                string(a.Type),
			Name:                a.Name,
			X:                   a.Transform.X,
			Y:                   a.Transform.Y,
			Width:               a.Transform.Width,
			Height:              a.Transform.Height,
			Rotation:            a.Transform.Rotation,
			Opacity:             a.Transform.Opacity,
			PreserveAspectRatio: a.Transform.PreserveAspectRatio,
			ZIndex:              a.ZIndex,
			Visible:             a.Visible,
			Locked:              a.Locked,
		}
		if a.Timeline != nil {
			state.Binding = &BindingState{
				Track:    a.Timeline.TrackID,
				Clip:     a.Timeline.ClipID,
				Start:    a.Timeline.Start,
				Duration: a.Timeline.Duration,
			}
		}
		snap.Assets = append(snap.Assets, state)
	}

	for _, track := range store.AudioTracks() {
		state := AudioTrackState{
			ID:     track.ID,
			Locked: track.Locked,
			Muted:  track.Muted,
			Solo:   track.Solo,
			Clips:  []AudioClipState{},
		}
		for _, clip := range track.Clips {
			state.Clips = append(state.Clips, AudioClipState{
				ID:       clip.ID,
				Library:  clip.LibraryID,
				Name:     clip.Name,
				Start:    clip.Start,
				Duration: clip.Duration,
				Volume:   clip.Volume,
				FadeIn:   clip.FadeIn,
				FadeOut:  clip.FadeOut,
			})
		}
		snap.AudioTracks = append(snap.AudioTracks, state)
	}

	for _, track := range store.ContentTracks() {
		state := ContentTrackState{
			ID:     track.ID,
			Locked: track.Locked,
			Hidden: track.Hidden,
			Clips:  []ContentClipState{},
		}
		for _, clip := range track.Clips {
			state.Clips = append(state.Clips, ContentClipState{
				ID:       clip.ID,
				Library:  clip.LibraryID,
				Asset:    clip.CanvasAssetID,
				Name:     clip.Name,
				Start:    clip.Start,
				Duration: clip.Duration,
				Kind:     string(clip.Kind),
			})
		}
		snap.ContentTracks = append(snap.ContentTracks, state)
	}

	return snap
}
