package sequence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseBasics(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "opening-moves.txt", `#!name: Opening Moves
#!description: The first few turns of the game
# walk to the house
north
east

open window
enter window
`)

	seq, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "opening-moves", seq.ID)
	assert.Equal(t, "Opening Moves", seq.Name)
	assert.Equal(t, "The first few turns of the game", seq.Description)
	assert.Equal(t, []string{"north", "east", "open window", "enter window"}, seq.Commands)
	assert.Equal(t, 4, seq.CommandCount())
}

func TestParseExplicitID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "whatever.txt", "#!id: troll-fight\nkill troll with sword\n")

	seq, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "troll-fight", seq.ID)
	assert.Equal(t, "troll-fight", seq.Name)
}

func TestParseInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "approach.txt", "#!name: ignored in includes\nnorth\neast\n")
	path := writeFile(t, dir, "main.txt", "#!name: Main\n@include approach.txt\nopen window\n")

	seq, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "Main", seq.Name)
	assert.Equal(t, []string{"north", "east", "open window"}, seq.Commands)
	assert.Equal(t, "Main", seq.Metadata["name"])
}

func TestParseCircularInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "@include b.txt\n")
	path := writeFile(t, dir, "b.txt", "@include a.txt\n")

	_, err := Parse(path)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Msg, "circular")
}

func TestParseIncludeDepthLimit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leaf.txt", "look\n")
	writeFile(t, dir, "mid.txt", "@include leaf.txt\n")
	path := writeFile(t, dir, "top.txt", "@include mid.txt\n")

	p := &Parser{MaxIncludeDepth: 1}
	_, err := p.ParseFile(path)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Msg, "depth")

	seq, err := (&Parser{MaxIncludeDepth: 2}).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"look"}, seq.Commands)
}

func TestParseMissingInclude(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.txt", "north\n@include nope.txt\n")

	_, err := Parse(path)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.File)
	assert.Equal(t, 2, pe.Line)
}

func TestParseBadMetadataLine(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.txt", "#!no colon here\n")

	_, err := Parse(path)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "seq.txt", `#!id: seq
#!name: A Sequence
#!custom: some value
# comment
north
take lamp
`)

	first, err := Parse(path)
	require.NoError(t, err)

	again := writeFile(t, dir, "seq2.txt", Serialize(first))
	second, err := Parse(again)
	require.NoError(t, err)

	assert.Equal(t, first.Commands, second.Commands)
	assert.Equal(t, first.Metadata, second.Metadata)
	assert.Equal(t, first.ID, second.ID)
}

func TestCompareOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "seq.txt", `#!compare.tolerate_combat_variance: true
#!compare.tolerance_threshold: 0.9
#!compare.known_variations: songbird, thief
#!name: Seq
look
`)

	seq, err := Parse(path)
	require.NoError(t, err)

	overrides := seq.CompareOverrides()
	assert.Equal(t, true, overrides["tolerate_combat_variance"])
	assert.Equal(t, 0.9, overrides["tolerance_threshold"])
	assert.Equal(t, []string{"songbird", "thief"}, overrides["known_variations"])
	assert.NotContains(t, overrides, "name")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "south\n")
	writeFile(t, dir, "a.seq", "north\n")
	writeFile(t, dir, "notes.md", "not a sequence\n")

	seqs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, "a", seqs[0].ID)
	assert.Equal(t, "b", seqs[1].ID)
}

func TestLoadDirSurfacesParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.txt", "north\n")
	writeFile(t, dir, "bad.txt", "#!broken\n")

	seqs, err := LoadDir(dir)
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	require.Len(t, seqs, 1)
	assert.Equal(t, "good", seqs[0].ID)
}
