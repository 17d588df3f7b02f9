// Package baseline persists per-sequence parity scores between validation
// runs so the validator can detect regressions.
package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jsredmond/zorkparity/internal/models"
)

// Baseline is a stored snapshot of per-sequence parity scores. The validator
// treats a loaded baseline as read-only input.
type Baseline struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Scores      map[string]float64 `json:"scores"`
}

// New builds a baseline from per-sequence validation results.
func New(sequences []models.SequenceValidation) *Baseline {
	b := &Baseline{GeneratedAt: time.Now(), Scores: map[string]float64{}}
	for _, s := range sequences {
		b.Scores[s.SequenceID] = s.ParityScore
	}
	return b
}

// Load reads a baseline file. A missing file is an error; callers that treat
// the baseline as optional should check errors.Is(err, os.ErrNotExist).
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Scores == nil {
		b.Scores = map[string]float64{}
	}
	return &b, nil
}

// Save writes the baseline to path, creating parent directories as needed.
func Save(path string, b *Baseline) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create baseline dir: %w", err)
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write baseline: %w", err)
	}
	return nil
}

// Regression band boundaries: the parity-point drop below which a regression
// stays in the band.
const (
	MinorDropLimit    = 5.0
	ModerateDropLimit = 15.0
	SevereDropLimit   = 30.0
)

// ClassifyDrop grades a parity decrease in points.
func ClassifyDrop(drop float64) models.RegressionSeverity {
	switch {
	case drop < MinorDropLimit:
		return models.RegressionMinor
	case drop < ModerateDropLimit:
		return models.RegressionModerate
	case drop < SevereDropLimit:
		return models.RegressionSevere
	default:
		return models.RegressionCritical
	}
}

// DetectRegressions compares current per-sequence scores against a prior
// baseline and returns one Regression per sequence whose parity decreased.
// Sequences absent from the baseline are new, not regressed. The baseline is
// never mutated.
func DetectRegressions(b *Baseline, current []models.SequenceValidation) []models.Regression {
	if b == nil {
		return nil
	}
	var out []models.Regression
	for _, s := range current {
		prior, ok := b.Scores[s.SequenceID]
		if !ok || s.ParityScore >= prior {
			continue
		}
		drop := prior - s.ParityScore
		out = append(out, models.Regression{
			SequenceID:    s.SequenceID,
			BaselineScore: prior,
			CurrentScore:  s.ParityScore,
			Drop:          drop,
			Severity:      ClassifyDrop(drop),
		})
	}
	return out
}
