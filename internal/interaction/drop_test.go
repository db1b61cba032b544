package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montagehq/montage/internal/composition"
)

func TestEngine_Drop_OnStage(t *testing.T) {
	store, eng := newTestEngine(t)

	eng.Drop(DropEvent{
		Surface: DropOnStage,
		X:       500, Y: 500,
		Payload: []byte(`{"assetId":"char-astronaut","type":"character"}`),
	})

	assets := store.Assets()
	require.Len(t, assets, 1)
	assert.Equal(t, "char-astronaut", assets[0].LibraryID)
	assert.Equal(t, 32.5, assets[0].Transform.X, "box centered on the drop point")
	assert.Equal(t, 32.5, assets[0].Transform.Y)
}

func TestEngine_Drop_MusicOnStageRefused(t *testing.T) {
	store, eng := newTestEngine(t)

	eng.Drop(DropEvent{
		Surface: DropOnStage,
		X:       500, Y: 500,
		Payload: []byte(`{"assetId":"music-chill","type":"music"}`),
	})

	assert.Empty(t, store.Assets())
}

func TestEngine_Drop_OnAudioTrack(t *testing.T) {
	store, eng := newTestEngine(t)

	eng.Drop(DropEvent{
		Surface:    DropOnAudioTrack,
		TrackIndex: 1,
		X:          250,
		Payload:    []byte(`{"assetId":"music-chill","type":"music"}`),
	})

	tracks := store.AudioTracks()
	assert.Empty(t, tracks[0].Clips)
	require.Len(t, tracks[1].Clips, 1)
	assert.Equal(t, 5.0, tracks[1].Clips[0].Start, "250px is 5s at 50pps")
	assert.Equal(t, 120.0, tracks[1].Clips[0].Duration)
}

func TestEngine_Drop_VisualOnAudioTrackRefused(t *testing.T) {
	store, eng := newTestEngine(t)

	eng.Drop(DropEvent{
		Surface: DropOnAudioTrack,
		X:       250,
		Payload: []byte(`{"assetId":"char-astronaut","type":"character"}`),
	})

	assert.Empty(t, store.AudioTracks()[0].Clips)
	assert.Empty(t, store.Assets())
}

func TestEngine_Drop_OnContentTrack(t *testing.T) {
	store, eng := newTestEngine(t)

	eng.Drop(DropEvent{
		Surface: DropOnContentTrack,
		X:       500,
		Payload: []byte(`{"assetId":"char-chef","type":"character"}`),
	})

	tracks := store.ContentTracks()
	require.Len(t, tracks[0].Clips, 1)
	clip := tracks[0].Clips[0]
	assert.Equal(t, 10.0, clip.Start)

	asset, ok := store.Asset(clip.CanvasAssetID)
	require.True(t, ok, "a visual drop creates the bound canvas asset")
	require.NotNil(t, asset.Timeline)
	assert.Equal(t, clip.ID, asset.Timeline.ClipID)
}

func TestEngine_Drop_MalformedPayload(t *testing.T) {
	store, eng := newTestEngine(t)

	eng.Drop(DropEvent{Surface: DropOnStage, Payload: []byte(`{"assetId":`)})
	eng.Drop(DropEvent{Surface: DropOnStage, Payload: nil})

	assert.Empty(t, store.Assets())
}

func TestEngine_Drop_UnknownAsset(t *testing.T) {
	store, eng := newTestEngine(t)

	eng.Drop(DropEvent{
		Surface: DropOnStage,
		Payload: []byte(`{"assetId":"no-such-asset","type":"character"}`),
	})

	assert.Empty(t, store.Assets())
}

func TestEngine_Drop_TypeMismatchRefused(t *testing.T) {
	store, eng := newTestEngine(t)

	// Payload claims a type the catalog disagrees with; refuse rather
	// than trust either side of a stale drag.
	eng.Drop(DropEvent{
		Surface: DropOnStage,
		Payload: []byte(`{"assetId":"char-astronaut","type":"music"}`),
	})

	assert.Empty(t, store.Assets())
}

func TestEngine_Drop_RefusedInPlayMode(t *testing.T) {
	store, eng := newTestEngine(t)
	store.SetMode(composition.ModePlay)

	eng.Drop(DropEvent{
		Surface: DropOnStage,
		X:       500, Y: 500,
		Payload: []byte(`{"assetId":"char-astronaut","type":"character"}`),
	})

	assert.Empty(t, store.Assets())
}
