package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProject chdirs into a fresh project directory with sequences/ and
// transcripts/ laid out where the default config expects them.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("sequences", 0o755))
	require.NoError(t, os.MkdirAll("transcripts", 0o755))
	return dir
}

func writeSequenceFile(t *testing.T, name string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join("sequences", name), []byte(content), 0o644))
}

func resetBatchFlags() {
	batchFormat = ""
	batchParallel = false
	batchWorkers = 0
	batchStopOnFailure = false
	batchSeed = 0
	batchJUnitPath = ""
	batchOutputPath = ""
	batchVerbose = false
}

func runBatch(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetBatchFlags()
	var buf bytes.Buffer
	cmd := newBatchCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestBatchCommand_PerfectParity(t *testing.T) {
	setupProject(t)
	writeSequenceFile(t, "opening.txt", "look\ntake leaflet\n")

	commands := []string{"look", "take leaflet"}
	outputs := []string{"West of House", "You are standing in an open field.", "Taken."}
	writeTranscript(t, "transcripts", "opening", "reference", commands, outputs)
	writeTranscript(t, "transcripts", "opening", "go", commands, outputs)

	out, err := runBatch(t, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "opening")
}

func TestBatchCommand_DivergenceFailsWithParityError(t *testing.T) {
	setupProject(t)
	writeSequenceFile(t, "opening.txt", "take leaflet\n")

	writeTranscript(t, "transcripts", "opening", "reference",
		[]string{"take leaflet"}, []string{"West of House", "Taken."})
	writeTranscript(t, "transcripts", "opening", "go",
		[]string{"take leaflet"}, []string{"West of House", "You pick up the leaflet."})

	_, err := runBatch(t, "--format", "text")
	require.Error(t, err)

	var parityErr *ParityFailureError
	assert.True(t, errors.As(err, &parityErr))
}

func TestBatchCommand_WritesJUnitReport(t *testing.T) {
	setupProject(t)
	writeSequenceFile(t, "opening.txt", "look\n")

	commands := []string{"look"}
	outputs := []string{"West of House", "You are standing in an open field."}
	writeTranscript(t, "transcripts", "opening", "reference", commands, outputs)
	writeTranscript(t, "transcripts", "opening", "go", commands, outputs)

	junitPath := filepath.Join(t.TempDir(), "parity.xml")
	out, err := runBatch(t, "--format", "text", "--junit", junitPath)
	require.NoError(t, err)
	assert.Contains(t, out, "JUnit report saved to")

	data, err := os.ReadFile(junitPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<testsuites")
	assert.Contains(t, string(data), "opening")
}

func TestBatchCommand_WritesJSONOutput(t *testing.T) {
	setupProject(t)
	writeSequenceFile(t, "opening.txt", "look\n")

	commands := []string{"look"}
	outputs := []string{"West of House", "You are standing in an open field."}
	writeTranscript(t, "transcripts", "opening", "reference", commands, outputs)
	writeTranscript(t, "transcripts", "opening", "go", commands, outputs)

	outPath := filepath.Join(t.TempDir(), "batch.json")
	_, err := runBatch(t, "--format", "text", "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"aggregate_parity"`)
}

func TestBatchCommand_MissingSequencesDir(t *testing.T) {
	setupProject(t)

	_, err := runBatch(t, "missing-dir", "--format", "text")
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*ParityFailureError))
}

func TestBatchCommand_ExplicitDirAndParallel(t *testing.T) {
	setupProject(t)
	require.NoError(t, os.MkdirAll("corpus", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("corpus", "a.txt"), []byte("look\n"), 0o644))

	commands := []string{"look"}
	outputs := []string{"West of House", "You are standing in an open field."}
	writeTranscript(t, "transcripts", "a", "reference", commands, outputs)
	writeTranscript(t, "transcripts", "a", "go", commands, outputs)

	out, err := runBatch(t, "corpus", "--parallel", "--workers", "2", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "100.00%")
}
