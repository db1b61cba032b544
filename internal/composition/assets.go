package composition

import (
	"sort"

	"github.com/montagehq/montage/internal/catalog"
	"github.com/montagehq/montage/internal/geom"
)

// Point is a stage position in percent space.
type Point struct {
	X float64
	Y float64
}

// Size is a stage extent in percent space.
type Size struct {
	Width  float64
	Height float64
}

// Placement requests where and how large a new canvas asset should be.
// Position is the desired center of the box. Nil fields use defaults.
// Background assets ignore placement entirely and fill the stage.
type Placement struct {
	Position *Point
	Size     *Size
}

// AddAsset places a library asset on the stage and selects it. Refused
// outside edit mode and for non-placeable (music) or unknown library
// ids. Returns the new asset id.
func (s *Store) AddAsset(libraryID string, placement *Placement) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAssetLocked(libraryID, placement)
}

func (s *Store) addAssetLocked(libraryID string, placement *Placement) (string, bool) {
	if s.mode != ModeEdit {
		return "", false
	}
	lib, ok := s.library.ByID(libraryID)
	if !ok || !lib.Type.PlaceableOnCanvas() {
		return "", false
	}

	tr := DefaultTransform()
	if lib.Type == catalog.TypeBackground {
		tr = FullStageTransform()
	} else if placement != nil {
		if placement.Size != nil {
			tr.Width = geom.Clamp(placement.Size.Width, geom.MinAssetPercent, geom.StageMax)
			tr.Height = geom.Clamp(placement.Size.Height, geom.MinAssetPercent, geom.StageMax)
		}
		if placement.Position != nil {
			// Center the box on the requested point, kept fully on stage.
			tr.X = geom.Clamp(placement.Position.X-tr.Width/2, 0, geom.StageMax-tr.Width)
			tr.Y = geom.Clamp(placement.Position.Y-tr.Height/2, 0, geom.StageMax-tr.Height)
		}
	}

	id := s.ids.NewID()
	s.assets = append(s.assets, CanvasAsset{
		ID:           id,
		LibraryID:    lib.ID,
		Type:         lib.Type,
		Name:         lib.Name,
		MediaURL:     lib.MediaURL,
		ThumbnailURL: lib.ThumbnailURL,
		Transform:    tr,
		ZIndex:       len(s.assets) + 1,
		Visible:      true,
	})
	s.selected = CanvasSelection(id)
	s.emit("asset.add", id, map[string]any{
		"library": lib.ID,
		"x":       tr.X,
		"y":       tr.Y,
		"width":   tr.Width,
		"height":  tr.Height,
	})
	return id, true
}

// UpdateTransform applies a partial transform update with per-field
// clamping. Fields are applied in order; position clamps against current
// size and size against current position, so the asset can never leave
// the stage or shrink below the visible minimum. No-op outside edit mode.
func (s *Store) UpdateTransform(assetID string, patch TransformPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit {
		return
	}
	i := s.assetIndex(assetID)
	if i < 0 {
		return
	}

	t := &s.assets[i].Transform
	if patch.X != nil {
		t.X = geom.Clamp(*patch.X, 0, geom.StageMax-t.Width)
	}
	if patch.Y != nil {
		t.Y = geom.Clamp(*patch.Y, 0, geom.StageMax-t.Height)
	}
	if patch.Width != nil {
		t.Width = geom.Clamp(*patch.Width, geom.MinAssetPercent, geom.StageMax-t.X)
	}
	if patch.Height != nil {
		t.Height = geom.Clamp(*patch.Height, geom.MinAssetPercent, geom.StageMax-t.Y)
	}
	if patch.Rotation != nil {
		t.Rotation = *patch.Rotation
	}
	if patch.Opacity != nil {
		t.Opacity = geom.ClampOpacity(*patch.Opacity)
	}
	if patch.PreserveAspectRatio != nil {
		t.PreserveAspectRatio = *patch.PreserveAspectRatio
	}
	s.emit("asset.transform", assetID, map[string]any{
		"x": t.X, "y": t.Y, "width": t.Width, "height": t.Height,
	})
}

// ToggleAssetVisibility flips an asset's visibility. Permitted in any
// mode so a user can always escape a bad state.
func (s *Store) ToggleAssetVisibility(assetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.assetIndex(assetID); i >= 0 {
		s.assets[i].Visible = !s.assets[i].Visible
		s.emit("asset.visibility", assetID, map[string]any{"visible": s.assets[i].Visible})
	}
}

// ToggleAssetLock flips an asset's lock flag. Permitted in any mode.
func (s *Store) ToggleAssetLock(assetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.assetIndex(assetID); i >= 0 {
		s.assets[i].Locked = !s.assets[i].Locked
		s.emit("asset.lock", assetID, map[string]any{"locked": s.assets[i].Locked})
	}
}

// ReorderZIndex swaps an asset with its neighbor in paint order
// (direction +1 toward front, -1 toward back) and re-densifies all
// z-indices to 1..N. No-op at either boundary or outside edit mode.
func (s *Store) ReorderZIndex(assetID string, direction int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit || (direction != 1 && direction != -1) {
		return
	}
	i := s.assetIndex(assetID)
	if i < 0 {
		return
	}
	j := i + direction
	if j < 0 || j >= len(s.assets) {
		return
	}
	s.assets[i], s.assets[j] = s.assets[j], s.assets[i]
	s.renumberZ()
	s.emit("asset.reorder", assetID, map[string]any{"zIndex": s.assets[j].ZIndex})
}

// RemoveEntity deletes the referenced entity. A canvas asset's bound
// content clip is deleted in the same mutation; an audio selection
// deletes the clip from whichever unlocked track holds it. Clears the
// selection. No-op outside edit mode.
func (s *Store) RemoveEntity(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit {
		return
	}
	switch sel.Kind {
	case SelectionCanvas:
		i := s.assetIndex(sel.ID)
		if i < 0 {
			return
		}
		binding := s.assets[i].Timeline
		s.assets = append(s.assets[:i], s.assets[i+1:]...)
		s.renumberZ()
		if binding != nil {
			// The mirror invariant outranks the track lock here: deleting
			// the asset must not leave a dangling clip.
			s.deleteContentClipLocked(binding.ClipID)
		}
		s.selected = NoSelection()
		s.emit("asset.remove", sel.ID, nil)
	case SelectionAudio:
		ti, ci := s.findAudioClip(sel.ID)
		if ti < 0 || s.audioTracks[ti].Locked {
			return
		}
		track := &s.audioTracks[ti]
		track.Clips = append(track.Clips[:ci], track.Clips[ci+1:]...)
		s.selected = NoSelection()
		s.emit("clip.remove", sel.ID, map[string]any{"track": track.ID})
	}
}

// RemoveSelected removes whatever is currently selected.
func (s *Store) RemoveSelected() {
	s.RemoveEntity(s.Selected())
}

// StackOrder returns all assets sorted by effective paint order, back to
// front. Within a track layer the explicit z-index wins; across layers
// the track order wins (earlier content tracks in front); assets with no
// track binding are frontmost.
func (s *Store) StackOrder() []CanvasAsset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CanvasAsset, len(s.assets))
	for i, a := range s.assets {
		out[i] = cloneAsset(a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.effectiveZ(out[i]) < s.effectiveZ(out[j])
	})
	return out
}

// effectiveZ computes the stacking value rank*stride + zIndex. Lock held.
func (s *Store) effectiveZ(a CanvasAsset) int {
	rank := len(s.contentTracks) + 1 // unbound assets above all layers
	if a.Timeline != nil {
		for i := range s.contentTracks {
			if s.contentTracks[i].ID == a.Timeline.TrackID {
				rank = len(s.contentTracks) - i
				break
			}
		}
	}
	return rank*trackLayerStride + a.ZIndex
}

// renumberZ restores the dense 1..N z-index invariant. Lock held.
func (s *Store) renumberZ() {
	for i := range s.assets {
		s.assets[i].ZIndex = i + 1
	}
}
