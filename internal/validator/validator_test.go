package validator

import (
	"context"
	"fmt"
	"testing"

	"github.com/jsredmond/zorkparity/internal/baseline"
	"github.com/jsredmond/zorkparity/internal/batch"
	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/jsredmond/zorkparity/internal/recorder"
	"github.com/jsredmond/zorkparity/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus(ids ...string) []*sequence.Sequence {
	seqs := make([]*sequence.Sequence, len(ids))
	for i, id := range ids {
		seqs[i] = &sequence.Sequence{ID: id, Name: id, Commands: []string{"look"}}
	}
	return seqs
}

func steadyScript(prefix string) recorder.ScriptFunc {
	return func(sequenceID string, _ int64, commands []string) ([]string, error) {
		out := []string{prefix + sequenceID}
		for _, cmd := range commands {
			out = append(out, prefix+sequenceID+" "+cmd)
		}
		return out, nil
	}
}

func perfectValidator() *Validator {
	cand := recorder.NewScriptedRecorder("go", steadyScript("out "))
	ref := recorder.NewScriptedRecorder("reference", steadyScript("out "))
	return New(batch.NewRunner(cand, ref))
}

func TestValidatePerfectRun(t *testing.T) {
	result, err := perfectValidator().ValidateSequences(context.Background(), corpus("a", "b"), Options{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.AggregateParity)
	assert.True(t, result.Certified())
	assert.Equal(t, models.CertificationPerfect, result.Certification.Level)
	assert.Equal(t, 100.0, result.Certification.SustainabilityScore)
	require.Len(t, result.Certification.Criteria, 4)
	for _, c := range result.Certification.Criteria {
		assert.True(t, c.Passed, c.Name)
		assert.Equal(t, 100.0, c.Score, c.Name)
	}

	assert.Empty(t, result.SeedVariations)
	assert.Equal(t, DefaultSeeds, result.SeedsTested)
	require.NotNil(t, result.SeedStats)
	assert.Equal(t, 100.0, result.SeedStats.Mean)
	assert.Equal(t, 0.0, result.SeedStats.StdDev)
	require.Len(t, result.Certification.Recommendations, 1)
	assert.Contains(t, result.Certification.Recommendations[0], "re-certify")
}

func TestValidateSeedVariation(t *testing.T) {
	cand := recorder.NewScriptedRecorder("go", func(id string, seed int64, commands []string) ([]string, error) {
		out := steadyScript("out ")
		if seed == DefaultSeeds[0] {
			return out(id, seed, commands)
		}
		// Other seeds change the combat roll wording entirely.
		return []string{"out " + id, fmt.Sprintf("a completely different outcome under seed %d", seed)}, nil
	})
	ref := recorder.NewScriptedRecorder("reference", steadyScript("out "))
	v := New(batch.NewRunner(cand, ref))

	result, err := v.ValidateSequences(context.Background(), corpus("a"), Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.SeedVariations)
	assert.Equal(t, models.CertificationAdvanced, result.Certification.Level)
	assert.False(t, result.Certified())
	assert.Less(t, result.Certification.SustainabilityScore, 100.0)

	for _, c := range result.Certification.Criteria {
		if c.Name == CriterionSeedConsistency {
			assert.False(t, c.Passed)
		} else {
			assert.True(t, c.Passed, c.Name)
		}
	}
}

func TestValidateImperfectSequence(t *testing.T) {
	cand := recorder.NewScriptedRecorder("go", func(id string, seed int64, commands []string) ([]string, error) {
		if id == "b" {
			return []string{"out b", "something else entirely, nothing like the reference"}, nil
		}
		return steadyScript("out ")(id, seed, commands)
	})
	ref := recorder.NewScriptedRecorder("reference", steadyScript("out "))
	v := New(batch.NewRunner(cand, ref))

	result, err := v.ValidateSequences(context.Background(), corpus("a", "b"), Options{SkipMultiSeed: true})
	require.NoError(t, err)

	assert.Less(t, result.AggregateParity, 100.0)
	assert.Equal(t, models.CertificationStandard, result.Certification.Level)
	require.Len(t, result.Sequences, 2)
	assert.True(t, result.Sequences[0].Perfect)
	assert.False(t, result.Sequences[1].Perfect)
	assert.Equal(t, 95.0, result.Certification.SustainabilityScore)
}

func TestValidateRegressionCheck(t *testing.T) {
	cand := recorder.NewScriptedRecorder("go", func(id string, seed int64, commands []string) ([]string, error) {
		if id == "b" {
			return []string{"out b", "divergent text bearing no resemblance to the reference"}, nil
		}
		return steadyScript("out ")(id, seed, commands)
	})
	ref := recorder.NewScriptedRecorder("reference", steadyScript("out "))
	v := New(batch.NewRunner(cand, ref))

	prior := &baseline.Baseline{Scores: map[string]float64{"a": 100, "b": 100}}
	result, err := v.ValidateSequences(context.Background(), corpus("a", "b"),
		Options{SkipMultiSeed: true, Baseline: prior})
	require.NoError(t, err)

	require.Len(t, result.Regressions, 1)
	assert.Equal(t, "b", result.Regressions[0].SequenceID)
	assert.Equal(t, models.RegressionCritical, result.Regressions[0].Severity)

	for _, c := range result.Certification.Criteria {
		if c.Name == CriterionNoRegressions {
			assert.False(t, c.Passed)
		}
	}
	// Baseline input is never mutated.
	assert.Equal(t, map[string]float64{"a": 100, "b": 100}, prior.Scores)
}

func TestValidateFailedSequenceContained(t *testing.T) {
	cand := recorder.NewScriptedRecorder("go", func(id string, seed int64, commands []string) ([]string, error) {
		if id == "broken" {
			return nil, fmt.Errorf("interpreter would not start")
		}
		return steadyScript("out ")(id, seed, commands)
	})
	ref := recorder.NewScriptedRecorder("reference", steadyScript("out "))
	v := New(batch.NewRunner(cand, ref))

	result, err := v.ValidateSequences(context.Background(), corpus("good", "broken"), Options{SkipMultiSeed: true})
	require.NoError(t, err)

	require.Len(t, result.Sequences, 2)
	failed := result.Sequences[1]
	assert.Zero(t, failed.ParityScore)
	assert.False(t, failed.Perfect)
	assert.Contains(t, failed.ErrorMsg, "interpreter")
}

func TestValidatePhasesInOrder(t *testing.T) {
	v := perfectValidator()
	var phases []Phase
	v.OnPhase(func(p Phase) { phases = append(phases, p) })

	_, err := v.ValidateSequences(context.Background(), corpus("a"), Options{})
	require.NoError(t, err)

	assert.Equal(t, []Phase{PhaseLoading, PhasePerSequence, PhaseMultiSeed, PhaseRegression, PhaseCertification}, phases)
}

func TestValidateSkipMultiSeed(t *testing.T) {
	result, err := perfectValidator().ValidateSequences(context.Background(), corpus("a"), Options{SkipMultiSeed: true})
	require.NoError(t, err)

	assert.Empty(t, result.SeedsTested)
	assert.Nil(t, result.SeedStats)
	assert.True(t, result.Certified())
}

func TestValidateEmptyCorpus(t *testing.T) {
	_, err := perfectValidator().ValidateSequences(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestDeriveLevelLadder(t *testing.T) {
	mk := func(passed int) []models.CriterionResult {
		criteria := make([]models.CriterionResult, 4)
		for i := range criteria {
			criteria[i].Passed = i < passed
		}
		return criteria
	}

	assert.Equal(t, models.CertificationPerfect, deriveLevel(mk(4)))
	assert.Equal(t, models.CertificationAdvanced, deriveLevel(mk(3)))
	assert.Equal(t, models.CertificationStandard, deriveLevel(mk(2)))
	assert.Equal(t, models.CertificationBasic, deriveLevel(mk(1)))
	assert.Equal(t, models.CertificationNone, deriveLevel(mk(0)))
}

func TestSustainabilityFloor(t *testing.T) {
	v := &models.PerfectParityValidation{
		Sequences: []models.SequenceValidation{
			{SequenceID: "a"}, {SequenceID: "b"}, {SequenceID: "c"},
		},
		Regressions: []models.Regression{
			{Severity: models.RegressionCritical},
			{Severity: models.RegressionCritical},
			{Severity: models.RegressionCritical},
		},
	}
	assert.Equal(t, 0.0, sustainability(v))
}
