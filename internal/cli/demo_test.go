package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_RunsScriptedSession(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "3 asset(s)", "background, character, and the visual clip's asset")
	assert.Contains(t, out, "1 audio clip(s)")
	assert.Contains(t, out, "1 content clip(s)")
	assert.Contains(t, out, "playhead at 0:12")
}

func TestDemo_RecordsJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.db")

	out, err := execute(t, "demo", "--journal", path)
	require.NoError(t, err)
	assert.Contains(t, out, "journal:")

	// The journal must be readable by trace afterwards.
	traceOut, err := execute(t, "trace", path)
	require.NoError(t, err)
	assert.Contains(t, traceOut, "asset.add")
	assert.Contains(t, traceOut, "clip.add")
}

func TestDemo_JSONFormat(t *testing.T) {
	out, err := execute(t, "--format", "json", "demo")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var summary demoSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 3, summary.Assets)
	assert.Equal(t, 1, summary.AudioClips)
	assert.Equal(t, 1, summary.ContentClips)
	assert.Equal(t, 12.0, summary.CurrentTime)
}
