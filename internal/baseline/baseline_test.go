package baseline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parity", "baseline.json")
	orig := &Baseline{
		GeneratedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Scores:      map[string]float64{"opening": 100, "troll-fight": 87.5},
	}

	require.NoError(t, Save(path, orig))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewBuildsScoreMap(t *testing.T) {
	b := New([]models.SequenceValidation{
		{SequenceID: "a", ParityScore: 100},
		{SequenceID: "b", ParityScore: 62.5},
	})
	assert.Equal(t, map[string]float64{"a": 100, "b": 62.5}, b.Scores)
}

func TestClassifyDrop(t *testing.T) {
	cases := []struct {
		drop float64
		want models.RegressionSeverity
	}{
		{0.5, models.RegressionMinor},
		{4.99, models.RegressionMinor},
		{5, models.RegressionModerate},
		{14.99, models.RegressionModerate},
		{15, models.RegressionSevere},
		{29.99, models.RegressionSevere},
		{30, models.RegressionCritical},
		{100, models.RegressionCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyDrop(tc.drop), "drop %v", tc.drop)
	}
}

func TestDetectRegressions(t *testing.T) {
	b := &Baseline{Scores: map[string]float64{"a": 100, "b": 90, "c": 80}}
	current := []models.SequenceValidation{
		{SequenceID: "a", ParityScore: 100},  // unchanged
		{SequenceID: "b", ParityScore: 70},   // dropped 20
		{SequenceID: "c", ParityScore: 85},   // improved
		{SequenceID: "new", ParityScore: 50}, // not in baseline
	}

	regs := DetectRegressions(b, current)
	require.Len(t, regs, 1)
	assert.Equal(t, "b", regs[0].SequenceID)
	assert.Equal(t, 20.0, regs[0].Drop)
	assert.Equal(t, models.RegressionSevere, regs[0].Severity)

	// The supplied baseline stays untouched.
	assert.Equal(t, map[string]float64{"a": 100, "b": 90, "c": 80}, b.Scores)
}

func TestDetectRegressionsNilBaseline(t *testing.T) {
	assert.Nil(t, DetectRegressions(nil, []models.SequenceValidation{{SequenceID: "a"}}))
}
