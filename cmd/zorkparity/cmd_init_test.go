package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsredmond/zorkparity/internal/projectconfig"
)

func TestInitCommand_CreatesProjectStructure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "my-port")

	var buf bytes.Buffer
	cmd := newInitCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{target})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(target, projectconfig.ConfigFileName))
	assert.DirExists(t, filepath.Join(target, "sequences"))
	assert.DirExists(t, filepath.Join(target, "transcripts"))
	assert.DirExists(t, filepath.Join(target, "reports"))

	output := buf.String()
	assert.Contains(t, output, projectconfig.ConfigFileName)
	assert.Contains(t, output, "Project initialized")
}

func TestInitCommand_WritesLoadableDefaults(t *testing.T) {
	dir := t.TempDir()

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{dir})
	require.NoError(t, cmd.Execute())

	cfg, err := projectconfig.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Engines.Candidate)
	assert.Equal(t, "reference", cfg.Engines.Reference)
	assert.Equal(t, 4, cfg.Defaults.Workers)
}

func TestInitCommand_DefaultsToCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := newInitCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, projectconfig.ConfigFileName))
}
