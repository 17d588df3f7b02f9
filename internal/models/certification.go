package models

import (
	"time"

	"github.com/jsredmond/zorkparity/internal/statistics"
)

// CertificationLevel is the validator's terminal verdict.
type CertificationLevel string

const (
	CertificationNone     CertificationLevel = "none"
	CertificationBasic    CertificationLevel = "basic"
	CertificationStandard CertificationLevel = "standard"
	CertificationAdvanced CertificationLevel = "advanced"
	CertificationPerfect  CertificationLevel = "perfect"
)

// CriterionResult is one named certification criterion with its pass/fail
// state and 0-100 score.
type CriterionResult struct {
	Name   string  `json:"name"`
	Passed bool    `json:"passed"`
	Score  float64 `json:"score"`
	Detail string  `json:"detail,omitempty"`
}

// SequenceValidation records how one sequence fared during per-sequence
// validation. A sequence that could not be validated at all carries a zero
// parity score and the error message.
type SequenceValidation struct {
	SequenceID      string  `json:"sequence_id"`
	Name            string  `json:"name"`
	ParityScore     float64 `json:"parity_score"`
	DifferenceCount int     `json:"difference_count"`
	Perfect         bool    `json:"perfect"`
	ErrorMsg        string  `json:"error_msg,omitempty"`
}

// SeedVariation records a parity or difference-count delta observed when the
// suite was re-run under a different pseudo-random seed. Any variation is a
// nondeterminism signal.
type SeedVariation struct {
	SequenceID      string  `json:"sequence_id"`
	Seed            int64   `json:"seed"`
	BaselineParity  float64 `json:"baseline_parity"`
	ObservedParity  float64 `json:"observed_parity"`
	BaselineDiffs   int     `json:"baseline_diffs"`
	ObservedDiffs   int     `json:"observed_diffs"`
}

// RegressionSeverity grades a parity drop versus the stored baseline.
type RegressionSeverity string

const (
	RegressionMinor    RegressionSeverity = "minor"
	RegressionModerate RegressionSeverity = "moderate"
	RegressionSevere   RegressionSeverity = "severe"
	RegressionCritical RegressionSeverity = "critical"
)

// Regression records a per-sequence parity decrease versus a prior baseline.
type Regression struct {
	SequenceID    string             `json:"sequence_id"`
	BaselineScore float64            `json:"baseline_score"`
	CurrentScore  float64            `json:"current_score"`
	Drop          float64            `json:"drop"`
	Severity      RegressionSeverity `json:"severity"`
}

// ParityCertification is the final certification artifact: criteria scores,
// the derived level, a sustainability score, and maintenance recommendations.
type ParityCertification struct {
	GeneratedAt         time.Time          `json:"generated_at"`
	Level               CertificationLevel `json:"level"`
	Criteria            []CriterionResult  `json:"criteria"`
	SustainabilityScore float64            `json:"sustainability_score"`
	Recommendations     []string           `json:"recommendations"`
}

// PerfectParityValidation is the full output of one validation run.
type PerfectParityValidation struct {
	StartedAt       time.Time            `json:"started_at"`
	DurationMs      int64                `json:"duration_ms"`
	AggregateParity float64              `json:"aggregate_parity"`
	Sequences       []SequenceValidation `json:"sequences"`
	SeedVariations  []SeedVariation      `json:"seed_variations"`
	SeedsTested     []int64              `json:"seeds_tested,omitempty"`
	Regressions     []Regression         `json:"regressions"`
	Certification   ParityCertification  `json:"certification"`

	// SeedStats summarizes per-seed aggregate parity, populated when at least
	// two seeds ran.
	SeedStats *SeedStats `json:"seed_stats,omitempty"`
}

// SeedStats is the seed-consistency summary: a bootstrap confidence interval
// over per-seed aggregate parity plus the population standard deviation of
// the same samples.
type SeedStats struct {
	statistics.ConfidenceInterval
	StdDev float64 `json:"stddev"`
}

// Certified reports whether the run achieved the perfect certification level.
func (v *PerfectParityValidation) Certified() bool {
	return v.Certification.Level == CertificationPerfect
}
