package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/montagehq/montage/internal/composition"
)

func TestEngine_HandleKey_DeleteRemovesSelection(t *testing.T) {
	store, eng := newTestEngine(t)
	id := addAsset(t, store, "char-astronaut")

	eng.HandleKey(KeyDelete, false)

	_, ok := store.Asset(id)
	assert.False(t, ok)
	assert.True(t, store.Selected().IsZero())
}

func TestEngine_HandleKey_DeleteIgnoredInPlayMode(t *testing.T) {
	store, eng := newTestEngine(t)
	id := addAsset(t, store, "char-astronaut")
	store.SetMode(composition.ModePlay)

	eng.HandleKey(KeyDelete, false)

	_, ok := store.Asset(id)
	assert.True(t, ok)
}

func TestEngine_HandleKey_ArrowsNudge(t *testing.T) {
	store, eng := newTestEngine(t)
	id := addAsset(t, store, "char-astronaut") // (25, 25)

	eng.HandleKey(KeyRight, false)
	eng.HandleKey(KeyDown, false)
	a, _ := store.Asset(id)
	assert.Equal(t, 26.0, a.Transform.X)
	assert.Equal(t, 26.0, a.Transform.Y)

	eng.HandleKey(KeyLeft, true)
	eng.HandleKey(KeyUp, true)
	a, _ = store.Asset(id)
	assert.Equal(t, 21.0, a.Transform.X, "large modifier nudges by five")
	assert.Equal(t, 21.0, a.Transform.Y)
}

func TestEngine_HandleKey_NudgeClampsAtEdge(t *testing.T) {
	store, eng := newTestEngine(t)
	id := addAsset(t, store, "char-astronaut")
	zero := 0.0
	store.UpdateTransform(id, composition.TransformPatch{X: &zero, Y: &zero})

	eng.HandleKey(KeyLeft, true)
	eng.HandleKey(KeyUp, true)

	a, _ := store.Asset(id)
	assert.Equal(t, 0.0, a.Transform.X)
	assert.Equal(t, 0.0, a.Transform.Y)
}

func TestEngine_HandleKey_LockedAssetNotNudged(t *testing.T) {
	store, eng := newTestEngine(t)
	id := addAsset(t, store, "char-astronaut")
	store.ToggleAssetLock(id)

	eng.HandleKey(KeyRight, false)

	a, _ := store.Asset(id)
	assert.Equal(t, 25.0, a.Transform.X)
}

func TestEngine_HandleKey_NoSelection(t *testing.T) {
	store, eng := newTestEngine(t)
	addAsset(t, store, "char-astronaut")
	store.Select(composition.NoSelection())

	// Nothing selected: delete and nudges are no-ops.
	eng.HandleKey(KeyDelete, false)
	eng.HandleKey(KeyRight, false)

	assert.Len(t, store.Assets(), 1)
}

func TestEngine_HandleKey_AudioSelectionDelete(t *testing.T) {
	store, eng := newTestEngine(t)
	addAudioClip(t, store, "music-chill", 10)

	eng.HandleKey(KeyDelete, false)

	assert.Empty(t, store.AudioTracks()[0].Clips)
}
