// Package validator orchestrates full parity certification: per-sequence
// validation, multi-seed nondeterminism detection, regression checks against
// a stored baseline, and the final certification verdict.
package validator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsredmond/zorkparity/internal/baseline"
	"github.com/jsredmond/zorkparity/internal/batch"
	"github.com/jsredmond/zorkparity/internal/comparator"
	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/jsredmond/zorkparity/internal/recorder"
	"github.com/jsredmond/zorkparity/internal/sequence"
	"github.com/jsredmond/zorkparity/internal/statistics"
)

// Phase identifies one step of a validation run. Phases always execute in
// declaration order; skipped phases are still announced so listeners see a
// complete trace.
type Phase string

const (
	PhaseLoading       Phase = "loading"
	PhasePerSequence   Phase = "per_sequence_validation"
	PhaseMultiSeed     Phase = "multi_seed_validation"
	PhaseRegression    Phase = "regression_check"
	PhaseCertification Phase = "certification_generation"
)

// DefaultSeeds is the seed set used when the caller supplies none. The first
// seed is the baseline the others are compared against.
var DefaultSeeds = []int64{1, 7, 42}

// DefaultSeedConcurrency bounds how many seed re-runs execute at once.
const DefaultSeedConcurrency = 2

// DefaultConfidenceLevel is the bootstrap confidence level for seed stats.
const DefaultConfidenceLevel = 0.95

// Options configures a validation run.
type Options struct {
	// Seeds to run the suite under. The first is the baseline seed; the rest
	// drive the multi-seed consistency check.
	Seeds []int64
	// SkipMultiSeed disables the seed consistency check.
	SkipMultiSeed bool
	// SkipRegressionCheck disables baseline comparison even when a baseline
	// is present.
	SkipRegressionCheck bool
	// Baseline is the prior score map for regression detection; nil means no
	// regression check. Treated as read-only.
	Baseline *baseline.Baseline

	// SeedConcurrency bounds parallel seed re-runs.
	SeedConcurrency int
	// ConfidenceLevel for the bootstrap interval over per-seed parity.
	ConfidenceLevel float64

	Batch      batch.Options
	Recording  recorder.RecordingOptions
	Comparison comparator.Options
}

func (o Options) normalized() Options {
	if len(o.Seeds) == 0 {
		o.Seeds = DefaultSeeds
	}
	if o.SeedConcurrency <= 0 {
		o.SeedConcurrency = DefaultSeedConcurrency
	}
	if o.ConfidenceLevel <= 0 || o.ConfidenceLevel >= 1 {
		o.ConfidenceLevel = DefaultConfidenceLevel
	}
	return o
}

// PhaseListener observes phase transitions.
type PhaseListener func(phase Phase)

// Validator runs the certification pipeline on top of a batch runner.
type Validator struct {
	runner *batch.Runner

	mu        sync.Mutex
	listeners []PhaseListener
}

// New creates a validator.
func New(runner *batch.Runner) *Validator {
	return &Validator{runner: runner}
}

// OnPhase registers a phase listener.
func (v *Validator) OnPhase(listener PhaseListener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, listener)
}

func (v *Validator) enterPhase(phase Phase) {
	slog.Debug("validation phase", "phase", phase)
	v.mu.Lock()
	listeners := make([]PhaseListener, len(v.listeners))
	copy(listeners, v.listeners)
	v.mu.Unlock()
	for _, l := range listeners {
		l(phase)
	}
}

// ValidateDir loads every sequence file in dir and validates the corpus.
func (v *Validator) ValidateDir(ctx context.Context, dir string, opts Options) (*models.PerfectParityValidation, error) {
	v.enterPhase(PhaseLoading)
	sequences, err := sequence.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading sequences from %s: %w", dir, err)
	}
	return v.validate(ctx, sequences, opts)
}

// ValidateSequences validates an already-loaded corpus.
func (v *Validator) ValidateSequences(ctx context.Context, sequences []*sequence.Sequence, opts Options) (*models.PerfectParityValidation, error) {
	v.enterPhase(PhaseLoading)
	return v.validate(ctx, sequences, opts)
}

func (v *Validator) validate(ctx context.Context, sequences []*sequence.Sequence, opts Options) (*models.PerfectParityValidation, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("no sequences to validate")
	}
	opts = opts.normalized()

	start := time.Now()
	result := &models.PerfectParityValidation{StartedAt: start}

	v.enterPhase(PhasePerSequence)
	mainBatch, err := v.runSeed(ctx, sequences, opts, opts.Seeds[0])
	if err != nil {
		return nil, err
	}
	result.AggregateParity = mainBatch.AggregateParity
	result.Sequences = toValidations(mainBatch)

	v.enterPhase(PhaseMultiSeed)
	if !opts.SkipMultiSeed && len(opts.Seeds) > 1 {
		variations, stats, err := v.runSeedMatrix(ctx, sequences, opts, mainBatch)
		if err != nil {
			return nil, err
		}
		result.SeedVariations = variations
		result.SeedsTested = opts.Seeds
		result.SeedStats = stats
	}

	v.enterPhase(PhaseRegression)
	if !opts.SkipRegressionCheck && opts.Baseline != nil {
		result.Regressions = baseline.DetectRegressions(opts.Baseline, result.Sequences)
	}

	v.enterPhase(PhaseCertification)
	result.Certification = certify(result, certifyInput{
		multiSeedRan:  !opts.SkipMultiSeed && len(opts.Seeds) > 1,
		regressionRan: !opts.SkipRegressionCheck && opts.Baseline != nil,
	})

	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// runSeed executes the whole corpus once under one seed.
func (v *Validator) runSeed(ctx context.Context, sequences []*sequence.Sequence, opts Options, seed int64) (*models.BatchResult, error) {
	recOpts := opts.Recording
	recOpts.Seed = seed
	return v.runner.Run(ctx, sequences, opts.Batch, recOpts, opts.Comparison)
}

// runSeedMatrix re-runs the suite under every additional seed and flags any
// per-sequence parity or difference-count delta versus the baseline seed.
func (v *Validator) runSeedMatrix(ctx context.Context, sequences []*sequence.Sequence, opts Options, mainBatch *models.BatchResult) ([]models.SeedVariation, *models.SeedStats, error) {
	extraSeeds := opts.Seeds[1:]
	batches := make([]*models.BatchResult, len(extraSeeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.SeedConcurrency)
	for i, seed := range extraSeeds {
		g.Go(func() error {
			b, err := v.runSeed(gctx, sequences, opts, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			batches[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	base := make(map[string]models.SequenceResult, len(mainBatch.Results))
	for _, r := range mainBatch.Results {
		base[r.SequenceID] = r
	}

	var variations []models.SeedVariation
	parities := []float64{mainBatch.AggregateParity}
	for i, b := range batches {
		parities = append(parities, b.AggregateParity)
		for _, r := range b.Results {
			ref, ok := base[r.SequenceID]
			if !ok {
				continue
			}
			if r.ParityScore != ref.ParityScore || r.DifferenceCount != ref.DifferenceCount {
				variations = append(variations, models.SeedVariation{
					SequenceID:     r.SequenceID,
					Seed:           extraSeeds[i],
					BaselineParity: ref.ParityScore,
					ObservedParity: r.ParityScore,
					BaselineDiffs:  ref.DifferenceCount,
					ObservedDiffs:  r.DifferenceCount,
				})
			}
		}
	}

	stats := &models.SeedStats{
		ConfidenceInterval: statistics.BootstrapCIWithSeed(parities, opts.ConfidenceLevel, opts.Seeds[0]),
		StdDev:             statistics.StdDev(parities),
	}
	return variations, stats, nil
}

// toValidations converts batch results into per-sequence validation records.
// A failed sequence becomes a zero-parity entry with the error preserved.
func toValidations(b *models.BatchResult) []models.SequenceValidation {
	out := make([]models.SequenceValidation, 0, len(b.Results))
	for _, r := range b.Results {
		out = append(out, models.SequenceValidation{
			SequenceID:      r.SequenceID,
			Name:            r.Name,
			ParityScore:     r.ParityScore,
			DifferenceCount: r.DifferenceCount,
			Perfect:         !r.Failed && r.ParityScore == 100.0 && r.DifferenceCount == 0,
			ErrorMsg:        r.ErrorMsg,
		})
	}
	return out
}
