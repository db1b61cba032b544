package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montagehq/montage/internal/catalog"
	"github.com/montagehq/montage/internal/composition"
	"github.com/montagehq/montage/internal/testutil"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordAndReadBack(t *testing.T) {
	j := openTestJournal(t)

	j.Record(composition.Event{Seq: 1, Op: "asset.add", EntityID: "e-1",
		Detail: map[string]any{"x": 25.0, "library": "char-astronaut"}})
	j.Record(composition.Event{Seq: 2, Op: "asset.remove", EntityID: "e-1"})

	events, err := j.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "asset.add", events[0].Op)
	assert.Equal(t, "e-1", events[0].EntityID)
	assert.Equal(t, 25.0, events[0].Detail["x"])
	assert.Nil(t, events[1].Detail)
}

func TestJournal_DuplicateSeqIgnored(t *testing.T) {
	j := openTestJournal(t)

	j.Record(composition.Event{Seq: 1, Op: "asset.add", EntityID: "e-1"})
	j.Record(composition.Event{Seq: 1, Op: "asset.remove", EntityID: "e-1"})

	events, err := j.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "asset.add", events[0].Op, "first write wins")
}

func TestJournal_EventsFor(t *testing.T) {
	j := openTestJournal(t)

	j.Record(composition.Event{Seq: 1, Op: "asset.add", EntityID: "e-1"})
	j.Record(composition.Event{Seq: 2, Op: "clip.add", EntityID: "e-2"})
	j.Record(composition.Event{Seq: 3, Op: "asset.lock", EntityID: "e-1"})

	events, err := j.EventsFor(context.Background(), "e-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].Seq)
	assert.Equal(t, int64(3), events[1].Seq)
}

func TestJournal_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	j, err := Open(path)
	require.NoError(t, err)
	j.Record(composition.Event{Seq: 1, Op: "asset.add", EntityID: "e-1"})
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()

	events, err := j.Events(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestJournal_AsStoreSink(t *testing.T) {
	j := openTestJournal(t)
	store := composition.New(catalog.Default(),
		composition.WithIDGenerator(testutil.NewSequentialIDGenerator("e")),
		composition.WithEventSink(j),
	)

	id, ok := store.AddAsset("char-astronaut", nil)
	require.True(t, ok)
	store.SetMode(composition.ModePlay)
	store.AddAsset("char-chef", nil) // refused: not in edit mode

	events, err := j.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2, "add, then mode change; the refused add never lands")
	assert.Equal(t, "asset.add", events[0].Op)
	assert.Equal(t, id, events[0].EntityID)
	assert.Equal(t, "mode.set", events[1].Op)
}
