package comparator

import (
	"testing"

	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTranscript(id string, outputs ...string) *models.Transcript {
	t := &models.Transcript{ID: id, Source: "test"}
	for i, out := range outputs {
		cmd := ""
		if i > 0 {
			cmd = "look"
		}
		t.Entries = append(t.Entries, models.TranscriptEntry{
			Index:   i,
			Command: cmd,
			Output:  out,
			Turn:    i,
		})
	}
	return t
}

func TestCompare_IdenticalTranscripts(t *testing.T) {
	ref := makeTranscript("ref", "West of House", "Forest", "Behind House")
	cand := makeTranscript("cand", "West of House", "Forest", "Behind House")

	report := New(DefaultOptions()).Compare(ref, cand)

	assert.Equal(t, 100.0, report.ParityScore)
	assert.Empty(t, report.Differences)
	assert.Equal(t, 3, report.ExactMatches)
	assert.Equal(t, 0, report.CloseMatches)
	assert.True(t, report.Perfect())
}

func TestCompare_SingleLookEntry(t *testing.T) {
	ref := makeTranscript("ref", "West of House")
	cand := makeTranscript("cand", "West of House")

	report := New(DefaultOptions()).Compare(ref, cand)

	assert.Equal(t, 100.0, report.ParityScore)
	assert.Empty(t, report.Differences)
}

func TestCompare_ObjectManipulationDivergence(t *testing.T) {
	ref := &models.Transcript{ID: "ref", Entries: []models.TranscriptEntry{
		{Index: 0, Command: "", Output: "West of House"},
		{Index: 1, Command: "take sword", Output: "Taken."},
	}}
	cand := &models.Transcript{ID: "cand", Entries: []models.TranscriptEntry{
		{Index: 0, Command: "", Output: "West of House"},
		{Index: 1, Command: "take sword", Output: "You pick up the sword."},
	}}

	report := New(DefaultOptions()).Compare(ref, cand)

	require.Len(t, report.Differences, 1)
	d := report.Differences[0]
	assert.Equal(t, 1, d.Index)
	assert.Equal(t, "take sword", d.Command)
	assert.Equal(t, models.CategoryObjectManipulation, d.Category)
	assert.True(t, d.Severity == models.SeverityMajor || d.Severity == models.SeverityCritical,
		"expected major or critical, got %s", d.Severity)
	assert.Equal(t, "Taken.", d.Expected)
	assert.Equal(t, "You pick up the sword.", d.Actual)
}

func TestCompare_CountConsistency(t *testing.T) {
	ref := makeTranscript("ref", "West of House", "Forest", "A narrow path winds north.", "Clearing")
	cand := makeTranscript("cand", "West of House", "Meadow", "A  narrow path winds north.", "You are lost in the dark.")

	report := New(DefaultOptions()).Compare(ref, cand)

	assert.Equal(t, report.TotalCommands,
		report.ExactMatches+report.CloseMatches+len(report.Differences))
	assert.Equal(t, len(report.Differences), report.Summary.Total())
}

func TestCompare_MissingEntryIsCritical(t *testing.T) {
	ref := makeTranscript("ref", "West of House", "Forest", "Clearing")
	cand := makeTranscript("cand", "West of House", "Forest")

	report := New(DefaultOptions()).Compare(ref, cand)

	require.Len(t, report.Differences, 1)
	assert.Equal(t, 2, report.Differences[0].Index)
	assert.Equal(t, models.SeverityCritical, report.Differences[0].Severity)
	assert.Equal(t, "Clearing", report.Differences[0].Expected)
	assert.Empty(t, report.Differences[0].Actual)
	assert.Equal(t, 3, report.TotalCommands)
}

func TestCompare_EmptyTranscripts(t *testing.T) {
	report := New(DefaultOptions()).Compare(&models.Transcript{ID: "a"}, &models.Transcript{ID: "b"})

	assert.Equal(t, 100.0, report.ParityScore)
	assert.Equal(t, 0, report.TotalCommands)
	assert.Empty(t, report.Differences)
}

func TestCompare_StructuralNoiseInvariance(t *testing.T) {
	noisy := "ZORK I: The Great Underground Empire\n" +
		"Copyright (c) 1981, 1982, 1983 Infocom, Inc.\n" +
		"Revision 88 / Serial number 840726\n" +
		"\n" +
		"West of House                        Score: 0        Moves: 0\n" +
		"\n" +
		"West of House\n" +
		"You are standing in an open field west of a white house,\n" +
		"with a boarded front door.\n"
	clean := "West of House\nYou are standing in an open field west of a white house, with a boarded front door."

	ref := makeTranscript("ref", clean)
	cand := makeTranscript("cand", noisy)

	report := New(DefaultOptions()).Compare(ref, cand)

	assert.Equal(t, 100.0, report.ParityScore, "header/status noise must normalize away")
	assert.Empty(t, report.Differences)
}

func TestCompare_AtmosphericMessagesFiltered(t *testing.T) {
	ref := makeTranscript("ref", "Forest\nThis is a dimly lit forest.")
	cand := makeTranscript("cand", "Forest\nThis is a dimly lit forest.\nYou hear in the distance the chirping of a song bird.")

	report := New(DefaultOptions()).Compare(ref, cand)
	assert.Empty(t, report.Differences)
}

func TestCompare_ErrorMessageFamilies(t *testing.T) {
	ref := &models.Transcript{ID: "ref", Entries: []models.TranscriptEntry{
		{Index: 0, Output: "West of House"},
		{Index: 1, Command: "take lamp", Output: "You can't see any lamp here!"},
	}}
	cand := &models.Transcript{ID: "cand", Entries: []models.TranscriptEntry{
		{Index: 0, Output: "West of House"},
		{Index: 1, Command: "take lamp", Output: "There is no lamp here."},
	}}

	report := New(DefaultOptions()).Compare(ref, cand)
	assert.Empty(t, report.Differences, "synonymous error phrasings must canonicalize to one token")
}

func TestCompare_FormattingSeverity(t *testing.T) {
	opts := DefaultOptions()
	opts.NormalizeWhitespace = false
	opts.NormalizeLineWrapping = false
	opts.ToleranceThreshold = 0.999

	ref := makeTranscript("ref", "a b c d e f g h i j")
	cand := makeTranscript("cand", "a  b  c  d  e  f  g  h  i  j")

	report := New(opts).Compare(ref, cand)
	require.Len(t, report.Differences, 1)
	assert.Equal(t, models.SeverityFormatting, report.Differences[0].Severity)
}

func TestCompare_KnownVariationCapsAtMinor(t *testing.T) {
	opts := DefaultOptions()
	opts.KnownVariations = []string{"grue"}

	ref := makeTranscript("ref", "It is pitch black. You are likely to be eaten by a grue.")
	cand := makeTranscript("cand", "Darkness surrounds you. A grue may be lurking nearby, waiting to eat you.")

	report := New(opts).Compare(ref, cand)
	require.Len(t, report.Differences, 1)
	assert.Equal(t, models.SeverityMinor, report.Differences[0].Severity)
}

func TestCompare_CombatVarianceKnob(t *testing.T) {
	ref := &models.Transcript{ID: "ref", Entries: []models.TranscriptEntry{
		{Index: 0, Output: "Cellar"},
		{Index: 1, Command: "attack troll with sword", Output: "The troll is knocked out!"},
	}}
	cand := &models.Transcript{ID: "cand", Entries: []models.TranscriptEntry{
		{Index: 0, Output: "Cellar"},
		{Index: 1, Command: "attack troll with sword", Output: "You miss the troll by a wide margin as it dodges."},
	}}

	strict := New(DefaultOptions()).Compare(ref, cand)
	require.Len(t, strict.Differences, 1)
	assert.True(t, strict.Differences[0].Severity.AtLeast(models.SeverityMajor))

	opts := DefaultOptions()
	opts.TolerateCombatVariance = true
	tolerant := New(opts).Compare(ref, cand)
	require.Len(t, tolerant.Differences, 1)
	assert.Equal(t, models.SeverityMinor, tolerant.Differences[0].Severity)
	assert.Equal(t, models.CategoryCombat, tolerant.Differences[0].Category)
}

func TestCompare_ParityFormula(t *testing.T) {
	ref := makeTranscript("ref", "one", "two", "three", "four")
	cand := makeTranscript("cand", "one", "two", "three", "completely different text here")

	report := New(DefaultOptions()).Compare(ref, cand)

	want := float64(report.ExactMatches+report.CloseMatches) / float64(report.TotalCommands) * 100
	assert.InDelta(t, want, report.ParityScore, 1e-9)
	assert.Equal(t, 75.0, report.ParityScore)
}

func TestSimilarity_EdgeCases(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "something"))
	assert.Equal(t, 0.0, Similarity("something", ""))
	assert.Equal(t, 1.0, Similarity("same", "same"))
	assert.InDelta(t, 0.75, Similarity("abcd", "abcx"), 1e-9)
}

func TestCategorizeCommand(t *testing.T) {
	cases := map[string]models.Category{
		"":                 models.CategoryInitial,
		"north":            models.CategoryNavigation,
		"n":                models.CategoryNavigation,
		"go west":          models.CategoryNavigation,
		"look":             models.CategoryRoomDescription,
		"look at painting": models.CategoryExamination,
		"examine sword":    models.CategoryExamination,
		"i":                models.CategoryInventory,
		"take lamp":        models.CategoryObjectManipulation,
		"open mailbox":     models.CategoryObjectManipulation,
		"kill troll":       models.CategoryCombat,
		"pray":             models.CategoryInteraction,
		"save":             models.CategoryMeta,
		"xyzzy":            models.CategoryParserResponse,
		"GET ALL":          models.CategoryObjectManipulation,
	}
	for cmd, want := range cases {
		assert.Equal(t, want, CategorizeCommand(cmd), "command %q", cmd)
	}
}

func TestDecodeOptions(t *testing.T) {
	opts, err := DecodeOptions(map[string]any{
		"tolerance_threshold":      0.9,
		"tolerate_combat_variance": true,
		"known_variations":         []string{"grue"},
		"unknown_key":              "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.9, opts.ToleranceThreshold)
	assert.True(t, opts.TolerateCombatVariance)
	assert.Equal(t, []string{"grue"}, opts.KnownVariations)
	// untouched keys keep their defaults
	assert.True(t, opts.StripGameHeader)
	assert.Equal(t, DefaultMinorThreshold, opts.MinorThreshold)
}

func TestDecodeOptions_BadThreshold(t *testing.T) {
	_, err := DecodeOptions(map[string]any{"tolerance_threshold": 1.5})
	assert.Error(t, err)
}
