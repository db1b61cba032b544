package interaction

import (
	json "github.com/goccy/go-json"

	"github.com/montagehq/montage/internal/catalog"
	"github.com/montagehq/montage/internal/composition"
)

// PayloadMIME is the drag payload media type the library panel emits.
const PayloadMIME = "application/x-vid-asset"

// dropPayload is the serialized form carried by a library drag.
type dropPayload struct {
	AssetID string `json:"assetId"`
	Type    string `json:"type"`
}

// Drop completes a drag-and-drop from the asset library. Malformed
// payloads, unknown library ids, a payload type that disagrees with the
// catalog, and type/surface mismatches are all refused silently. The
// store applies its own mode and lock gates on top.
func (e *Engine) Drop(ev DropEvent) {
	var payload dropPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		e.log.Debug("drop payload rejected", "error", err)
		return
	}
	lib, ok := e.store.Library().ByID(payload.AssetID)
	if !ok {
		return
	}
	// A stale or tampered payload can carry the wrong type for the id;
	// the catalog entry is authoritative.
	if catalog.AssetType(payload.Type) != lib.Type {
		return
	}

	switch ev.Surface {
	case DropOnStage:
		if !lib.Type.PlaceableOnCanvas() {
			return
		}
		pos := composition.Point{
			X: e.stage.PercentX(ev.X),
			Y: e.stage.PercentY(ev.Y),
		}
		e.store.AddAsset(lib.ID, &composition.Placement{Position: &pos})
	case DropOnAudioTrack:
		if !lib.Type.IsAudio() {
			return
		}
		start := e.timeAt(ev.X)
		ti := ev.TrackIndex
		e.store.AddAudioClip(lib.ID, composition.ClipPlacement{Start: &start, TrackIndex: &ti})
	case DropOnContentTrack:
		if !lib.Type.PlaceableOnCanvas() {
			return
		}
		start := e.timeAt(ev.X)
		ti := ev.TrackIndex
		e.store.AddVisualClip(lib.ID, composition.ClipPlacement{Start: &start, TrackIndex: &ti})
	}
}
