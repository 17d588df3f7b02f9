package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsredmond/zorkparity/internal/batch"
	"github.com/jsredmond/zorkparity/internal/projectconfig"
	"github.com/jsredmond/zorkparity/internal/recorder"
	"github.com/jsredmond/zorkparity/internal/reporting"
	"github.com/jsredmond/zorkparity/internal/sequence"
)

var (
	batchFormat        string
	batchParallel      bool
	batchWorkers       int
	batchStopOnFailure bool
	batchSeed          int64
	batchJUnitPath     string
	batchOutputPath    string
	batchVerbose       bool
)

func newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [sequences-dir]",
		Short: "Run a sequence corpus against both engines",
		Long: `Run every command sequence in a directory against the candidate and
reference engines and aggregate the per-sequence comparisons.

The aggregate parity score weights each sequence by its command count. Exits 1
when any sequence fails to record or diverges from the reference.`,
		Args: cobra.MaximumNArgs(1),
		RunE: batchCommandE,
	}

	cmd.Flags().StringVarP(&batchFormat, "format", "f", "", "Output format: text, json, markdown, html (default from config)")
	cmd.Flags().BoolVar(&batchParallel, "parallel", false, "Run sequences concurrently")
	cmd.Flags().IntVar(&batchWorkers, "workers", 0, "Number of concurrent workers (default from config, requires --parallel)")
	cmd.Flags().BoolVar(&batchStopOnFailure, "stop-on-failure", false, "Stop scheduling new sequences after the first failure")
	cmd.Flags().Int64Var(&batchSeed, "seed", 0, "RNG seed passed to both engines")
	cmd.Flags().StringVar(&batchJUnitPath, "junit", "", "Write a JUnit XML report to this path")
	cmd.Flags().StringVarP(&batchOutputPath, "output", "o", "", "Write the raw batch result JSON to this path")
	cmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Verbose output with per-sequence progress")

	return cmd
}

func batchCommandE(cmd *cobra.Command, args []string) error {
	cfg, cmpOpts, err := loadProject()
	if err != nil {
		return err
	}
	format, err := resolveFormat(batchFormat, cfg.Defaults.Format)
	if err != nil {
		return err
	}

	sequencesDir := cfg.Paths.Sequences
	if len(args) > 0 {
		sequencesDir = args[0]
	}

	sequences, err := sequence.LoadDir(sequencesDir)
	if err != nil {
		return fmt.Errorf("loading sequences from %s: %w", sequencesDir, err)
	}

	runner := newProjectRunner(cfg)
	if batchVerbose {
		runner.OnProgress(verboseProgressListener)
	} else {
		runner.OnProgress(simpleProgressListener)
	}

	result, err := runner.Run(context.Background(), sequences, batchOptionsFromConfig(cfg),
		recorder.RecordingOptions{Seed: batchSeed}, cmpOpts)
	if err != nil {
		return err
	}

	out, err := reporting.RenderBatchResult(format, result)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if batchOutputPath != "" {
		jsonOut, err := reporting.RenderBatchResult(reporting.FormatJSON, result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(batchOutputPath, []byte(jsonOut), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", batchOutputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results saved to: %s\n", batchOutputPath)
	}

	if batchJUnitPath != "" {
		if err := reporting.WriteJUnitXML(result, "zorkparity", batchJUnitPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "JUnit report saved to: %s\n", batchJUnitPath)
	}

	if result.Failed > 0 || result.TotalDifferences > 0 {
		return &ParityFailureError{
			Message: fmt.Sprintf("%d/%d sequences diverged or failed, aggregate parity %.2f%%",
				result.TotalSequences-result.Succeeded, result.TotalSequences, result.AggregateParity),
		}
	}
	return nil
}

// newProjectRunner builds a batch runner over replay recorders for the
// configured candidate and reference sources. A missing reference corpus
// degrades to candidate-only recording rather than erroring.
func newProjectRunner(cfg *projectconfig.ProjectConfig) *batch.Runner {
	replayDir := cfg.ReplayDir()
	candidate := recorder.NewReplayRecorder(replayDir, cfg.Engines.Candidate)
	reference := recorder.NewReplayRecorder(replayDir, cfg.Engines.Reference)
	return batch.NewRunner(candidate, reference)
}

// batchOptionsFromConfig merges CLI flags over config defaults.
func batchOptionsFromConfig(cfg *projectconfig.ProjectConfig) batch.Options {
	opts := batch.DefaultBatchOptions()
	if cfg.Defaults.Parallel != nil {
		opts.Parallel = *cfg.Defaults.Parallel
	}
	if cfg.Defaults.Workers > 0 {
		opts.MaxConcurrency = cfg.Defaults.Workers
	}
	if cfg.Defaults.StopOnFailure != nil {
		opts.StopOnFailure = *cfg.Defaults.StopOnFailure
	}

	if batchParallel {
		opts.Parallel = true
	}
	if batchWorkers > 0 {
		opts.MaxConcurrency = batchWorkers
	}
	if batchStopOnFailure {
		opts.StopOnFailure = true
	}
	return opts
}

func simpleProgressListener(event batch.ProgressEvent) {
	switch event.EventType {
	case batch.EventSequenceComplete:
		if event.Failed {
			fmt.Printf("✗ %s: failed\n", event.SequenceID)
			return
		}
		fmt.Printf("· %s: %.2f%%\n", event.SequenceID, event.ParityScore)
	case batch.EventBatchStopped:
		fmt.Println("Stopping after failure; remaining sequences skipped.")
	}
}

func verboseProgressListener(event batch.ProgressEvent) {
	switch event.EventType {
	case batch.EventBatchStart:
		fmt.Printf("Running %d sequence(s)...\n\n", event.TotalSequences)
	case batch.EventSequenceStart:
		fmt.Printf("[%d/%d] Running sequence: %s\n", event.SequenceNum, event.TotalSequences, event.SequenceID)
	case batch.EventSequenceComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		if event.Failed {
			fmt.Printf("  Sequence %s: FAILED (%v)\n\n", event.SequenceID, duration)
			return
		}
		fmt.Printf("  Sequence %s: %.2f%% (%v)\n\n", event.SequenceID, event.ParityScore, duration)
	case batch.EventBatchStopped:
		fmt.Println("Stopping after failure; remaining sequences skipped.")
	case batch.EventBatchComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("Batch completed in %v\n\n", duration)
	}
}
