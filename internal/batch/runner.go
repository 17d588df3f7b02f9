// Package batch runs many command sequences against both engines and
// aggregates the per-sequence comparisons into a weighted batch result.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/jsredmond/zorkparity/internal/comparator"
	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/jsredmond/zorkparity/internal/recorder"
	"github.com/jsredmond/zorkparity/internal/sequence"
)

// noReferenceNote annotates results produced without a reference engine.
// Absence of a reference is not a behavioral failure signal.
const noReferenceNote = "reference engine unavailable; candidate recorded without comparison"

// Runner executes sequences against a candidate and a reference recorder.
type Runner struct {
	candidate recorder.Recorder
	reference recorder.Recorder

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventBatchStart       EventType = "batch_start"
	EventBatchComplete    EventType = "batch_complete"
	EventBatchStopped     EventType = "batch_stopped"
	EventSequenceStart    EventType = "sequence_start"
	EventSequenceComplete EventType = "sequence_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType      EventType
	SequenceID     string
	SequenceNum    int
	TotalSequences int
	ParityScore    float64
	Failed         bool
	DurationMs     int64
}

// NewRunner creates a batch runner. reference may be nil when no reference
// engine exists in the environment.
func NewRunner(candidate, reference recorder.Recorder) *Runner {
	return &Runner{candidate: candidate, reference: reference}
}

// OnProgress registers a progress listener.
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}

// Run executes every sequence and aggregates the results. Results appear in
// input order regardless of execution order. The error return is reserved for
// configuration-level problems; per-sequence failures live inside the result.
func (r *Runner) Run(ctx context.Context, sequences []*sequence.Sequence, opts Options, recOpts recorder.RecordingOptions, cmpOpts comparator.Options) (*models.BatchResult, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("no sequences to run")
	}
	opts = opts.normalized(len(sequences))

	referenceAvailable := r.reference != nil && r.reference.IsAvailable()
	if !referenceAvailable {
		slog.Debug("reference recorder unavailable, running degraded", "candidate", r.candidate.Source())
	}

	r.notifyProgress(ProgressEvent{EventType: EventBatchStart, TotalSequences: len(sequences)})
	start := time.Now()

	var (
		results []*models.SequenceResult
		stopped bool
	)
	if opts.Parallel {
		results, stopped = r.runParallel(ctx, sequences, opts, recOpts, cmpOpts, referenceAvailable)
	} else {
		results, stopped = r.runSequential(ctx, sequences, opts, recOpts, cmpOpts, referenceAvailable)
	}

	batch := aggregate(results, opts, referenceAvailable)
	batch.Stopped = stopped
	batch.DurationMs = time.Since(start).Milliseconds()

	event := EventBatchComplete
	if stopped {
		event = EventBatchStopped
	}
	r.notifyProgress(ProgressEvent{EventType: event, TotalSequences: len(sequences), ParityScore: batch.AggregateParity, DurationMs: batch.DurationMs})
	return batch, nil
}

func (r *Runner) runSequential(ctx context.Context, sequences []*sequence.Sequence, opts Options, recOpts recorder.RecordingOptions, cmpOpts comparator.Options, referenceAvailable bool) ([]*models.SequenceResult, bool) {
	results := make([]*models.SequenceResult, len(sequences))
	for i, seq := range sequences {
		r.notifyProgress(ProgressEvent{EventType: EventSequenceStart, SequenceID: seq.ID, SequenceNum: i + 1, TotalSequences: len(sequences)})

		res := r.runSequence(ctx, seq, recOpts, cmpOpts, referenceAvailable)
		results[i] = &res

		r.notifyProgress(ProgressEvent{
			EventType:      EventSequenceComplete,
			SequenceID:     seq.ID,
			SequenceNum:    i + 1,
			TotalSequences: len(sequences),
			ParityScore:    res.ParityScore,
			Failed:         res.Failed,
			DurationMs:     res.DurationMs,
		})

		if opts.StopOnFailure && res.Failed {
			return results, i+1 < len(sequences)
		}
	}
	return results, false
}

// runParallel drains sequences through a bounded worker pool. Workers pull
// from a shared cursor and write to their sequence's original index, so no
// two goroutines ever touch the same slot. The stop flag is cooperative:
// checked between sequences, never mid-sequence.
func (r *Runner) runParallel(ctx context.Context, sequences []*sequence.Sequence, opts Options, recOpts recorder.RecordingOptions, cmpOpts comparator.Options, referenceAvailable bool) ([]*models.SequenceResult, bool) {
	results := make([]*models.SequenceResult, len(sequences))

	var (
		cursor int64 = -1
		stop   atomic.Bool
		wg     sync.WaitGroup
	)

	for w := 0; w < opts.MaxConcurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if stop.Load() {
					return
				}
				idx := int(atomic.AddInt64(&cursor, 1))
				if idx >= len(sequences) {
					return
				}
				seq := sequences[idx]

				r.notifyProgress(ProgressEvent{EventType: EventSequenceStart, SequenceID: seq.ID, SequenceNum: idx + 1, TotalSequences: len(sequences)})
				res := r.runSequence(ctx, seq, recOpts, cmpOpts, referenceAvailable)
				results[idx] = &res
				r.notifyProgress(ProgressEvent{
					EventType:      EventSequenceComplete,
					SequenceID:     seq.ID,
					SequenceNum:    idx + 1,
					TotalSequences: len(sequences),
					ParityScore:    res.ParityScore,
					Failed:         res.Failed,
					DurationMs:     res.DurationMs,
				})

				if opts.StopOnFailure && res.Failed {
					stop.Store(true)
					return
				}
			}
		}()
	}
	wg.Wait()

	ranAll := true
	for _, res := range results {
		if res == nil {
			ranAll = false
			break
		}
	}
	return results, stop.Load() && !ranAll
}

// runSequence records both transcripts for one sequence and compares them.
// Failures are contained in the result, never returned.
func (r *Runner) runSequence(ctx context.Context, seq *sequence.Sequence, recOpts recorder.RecordingOptions, cmpOpts comparator.Options, referenceAvailable bool) models.SequenceResult {
	start := time.Now()
	res := models.SequenceResult{SequenceID: seq.ID, Name: seq.Name}
	defer func() { res.DurationMs = time.Since(start).Milliseconds() }()

	opts, err := sequenceOptions(cmpOpts, seq)
	if err != nil {
		res.Failed = true
		res.ErrorMsg = err.Error()
		return res
	}

	recOpts.SequenceID = seq.ID
	cand, err := r.candidate.Record(ctx, seq.Commands, recOpts)
	if err != nil {
		res.Failed = true
		res.ErrorMsg = fmt.Sprintf("recording candidate: %v", err)
		return res
	}

	if !referenceAvailable {
		res.ParityScore = 100.0
		res.CommandCount = cand.CommandCount()
		res.Note = noReferenceNote
		return res
	}

	ref, err := r.reference.Record(ctx, seq.Commands, recOpts)
	if err != nil {
		res.Failed = true
		res.ErrorMsg = fmt.Sprintf("recording reference: %v", err)
		return res
	}

	report := comparator.New(opts).Compare(ref, cand)
	res.ParityScore = report.ParityScore
	res.CommandCount = report.TotalCommands
	res.DifferenceCount = len(report.Differences)
	res.Report = report
	return res
}

// sequenceOptions overlays a sequence's compare.* metadata onto the batch's
// comparison options.
func sequenceOptions(base comparator.Options, seq *sequence.Sequence) (comparator.Options, error) {
	overrides := seq.CompareOverrides()
	if len(overrides) == 0 {
		return base, nil
	}
	if err := mapstructure.Decode(overrides, &base); err != nil {
		return base, fmt.Errorf("sequence %s: decoding compare overrides: %w", seq.ID, err)
	}
	if err := base.Validate(); err != nil {
		return base, fmt.Errorf("sequence %s: %w", seq.ID, err)
	}
	return base, nil
}

func aggregate(results []*models.SequenceResult, opts Options, referenceAvailable bool) *models.BatchResult {
	batch := &models.BatchResult{}

	executed := make([]models.SequenceResult, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		executed = append(executed, *res)
	}

	batch.TotalSequences = len(executed)
	batch.Results = executed
	for _, res := range executed {
		if res.Failed {
			batch.Failed++
		} else {
			batch.Succeeded++
		}
		batch.TotalDifferences += res.DifferenceCount
	}
	batch.AggregateParity = models.WeightedParity(executed)
	batch.WorstSequences = worstSequences(executed, opts.WorstCount)
	if !referenceAvailable {
		batch.ReferenceNote = noReferenceNote
	}
	return batch
}

// worstSequences returns the top n results by difference count, descending,
// excluding sequences with no differences. Ties keep input order.
func worstSequences(results []models.SequenceResult, n int) []models.SequenceResult {
	var worst []models.SequenceResult
	for _, res := range results {
		if res.DifferenceCount > 0 {
			worst = append(worst, res)
		}
	}
	sort.SliceStable(worst, func(a, b int) bool {
		return worst[a].DifferenceCount > worst[b].DifferenceCount
	})
	if len(worst) > n {
		worst = worst[:n]
	}
	return worst
}
