package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsredmond/zorkparity/internal/projectconfig"
)

func TestAnswersFromConfig_PopulatesDefaults(t *testing.T) {
	a := answersFromConfig(projectconfig.New())

	assert.Equal(t, "sequences/", a.SequencesDir)
	assert.Equal(t, "transcripts/", a.TranscriptsDir)
	assert.Equal(t, "go", a.Candidate)
	assert.Equal(t, "reference", a.Reference)
	assert.Equal(t, "text", a.Format)
	assert.Equal(t, "4", a.Workers)
	assert.Equal(t, "1,7,42", a.Seeds)
	assert.False(t, a.Parallel)
	assert.False(t, a.Compress)
}

func TestApply_OverlaysAnswers(t *testing.T) {
	base := projectconfig.New()
	a := answersFromConfig(base)
	a.SequencesDir = "corpus/"
	a.Reference = "zil"
	a.Format = "json"
	a.Workers = "8"
	a.Seeds = "3, 11"
	a.Parallel = true

	cfg, err := a.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, "corpus/", cfg.Paths.Sequences)
	assert.Equal(t, "zil", cfg.Engines.Reference)
	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.Equal(t, 8, cfg.Defaults.Workers)
	assert.Equal(t, []int64{3, 11}, cfg.Defaults.Seeds)
	require.NotNil(t, cfg.Defaults.Parallel)
	assert.True(t, *cfg.Defaults.Parallel)

	// base is untouched
	assert.Equal(t, "sequences/", base.Paths.Sequences)
}

func TestApply_RejectsBadWorkers(t *testing.T) {
	a := answersFromConfig(projectconfig.New())
	a.Workers = "zero"
	_, err := a.Apply(projectconfig.New())
	assert.ErrorContains(t, err, "workers")

	a.Workers = "0"
	_, err = a.Apply(projectconfig.New())
	assert.ErrorContains(t, err, "between 1 and 64")
}

func TestParseSeeds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr string
	}{
		{"single", "42", []int64{42}, ""},
		{"multiple", "1, 7, 42", []int64{1, 7, 42}, ""},
		{"blanks skipped", "1,,7,", []int64{1, 7}, ""},
		{"negative allowed", "-5", []int64{-5}, ""},
		{"empty", "", nil, "at least one seed"},
		{"garbage", "1,x", nil, `invalid seed "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeeds(tt.input)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireValue(t *testing.T) {
	v := requireValue("reference engine")
	assert.NoError(t, v("zil"))
	assert.EqualError(t, v("   "), "reference engine is required")
}
