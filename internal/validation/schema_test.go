package validation

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/jsredmond/zorkparity/internal/transcripts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTranscriptJSON = `{
  "id": "opening-moves",
  "source": "go",
  "started_at": "2026-03-01T12:00:00Z",
  "ended_at": "2026-03-01T12:00:05Z",
  "entries": [
    {"index": 0, "command": "", "output": "West of House", "turn": 0},
    {"index": 1, "command": "open mailbox", "output": "Opened.", "turn": 1}
  ]
}`

const invalidTranscriptJSON = `{
  "id": "",
  "entries": [
    {"index": -1, "output": "West of House"}
  ]
}`

func TestValidateTranscriptBytes_Valid(t *testing.T) {
	assert.Empty(t, ValidateTranscriptBytes([]byte(validTranscriptJSON)))
}

func TestValidateTranscriptBytes_Invalid(t *testing.T) {
	errs := ValidateTranscriptBytes([]byte(invalidTranscriptJSON))
	require.NotEmpty(t, errs)

	joined := ""
	for _, e := range errs {
		joined += e + "\n"
	}
	// Missing source, empty id, negative index, missing command all surface.
	assert.Contains(t, joined, "source")
	assert.Contains(t, joined, "/entries/0")
}

func TestValidateTranscriptBytes_NotJSON(t *testing.T) {
	errs := ValidateTranscriptBytes([]byte("not json at all"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "JSON parse error")
}

func TestValidateTranscriptFile(t *testing.T) {
	dir := t.TempDir()
	tr := &models.Transcript{
		ID:        "opening",
		Source:    "go",
		StartedAt: time.Now(),
		EndedAt:   time.Now(),
		Entries: []models.TranscriptEntry{
			{Index: 0, Command: "", Output: "West of House", Turn: 0},
		},
	}

	for _, compressed := range []bool{false, true} {
		path, err := transcripts.Write(dir, "opening", tr, compressed)
		require.NoError(t, err)

		errs, err := ValidateTranscriptFile(path)
		require.NoError(t, err)
		assert.Empty(t, errs, path)
	}
}

func TestValidateTranscriptFile_Missing(t *testing.T) {
	_, err := ValidateTranscriptFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
