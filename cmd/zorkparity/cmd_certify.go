package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsredmond/zorkparity/internal/baseline"
	"github.com/jsredmond/zorkparity/internal/reporting"
	"github.com/jsredmond/zorkparity/internal/spinner"
	"github.com/jsredmond/zorkparity/internal/validator"
)

var (
	certifyFormat         string
	certifySeeds          []int64
	certifySkipMultiSeed  bool
	certifySkipRegression bool
	certifyBaselinePath   string
	certifyUpdateBaseline bool
	certifyVerbose        bool
)

func newCertifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certify [sequences-dir]",
		Short: "Run the full parity certification pipeline",
		Long: `Validate the whole sequence corpus and certify behavioral parity.

The pipeline runs every sequence under the baseline seed, re-runs the suite
under additional seeds to detect nondeterminism, checks for regressions
against the stored baseline, and derives a certification level from four
criteria. Exits 1 unless the perfect certification level is reached.`,
		Args: cobra.MaximumNArgs(1),
		RunE: certifyCommandE,
	}

	cmd.Flags().StringVarP(&certifyFormat, "format", "f", "", "Output format: text, json, markdown, html (default from config)")
	cmd.Flags().Int64SliceVar(&certifySeeds, "seeds", nil, "RNG seeds to validate under (default from config)")
	cmd.Flags().BoolVar(&certifySkipMultiSeed, "skip-multi-seed", false, "Skip the multi-seed consistency check")
	cmd.Flags().BoolVar(&certifySkipRegression, "skip-regression", false, "Skip the baseline regression check")
	cmd.Flags().StringVar(&certifyBaselinePath, "baseline", "", "Baseline file for regression detection (default from config)")
	cmd.Flags().BoolVar(&certifyUpdateBaseline, "update-baseline", false, "Write the per-sequence scores back as the new baseline")
	cmd.Flags().BoolVarP(&certifyVerbose, "verbose", "v", false, "Announce validation phases as they run")

	return cmd
}

func certifyCommandE(cmd *cobra.Command, args []string) error {
	cfg, cmpOpts, err := loadProject()
	if err != nil {
		return err
	}
	format, err := resolveFormat(certifyFormat, cfg.Defaults.Format)
	if err != nil {
		return err
	}

	sequencesDir := cfg.Paths.Sequences
	if len(args) > 0 {
		sequencesDir = args[0]
	}

	baselinePath := certifyBaselinePath
	if baselinePath == "" {
		baselinePath = cfg.Paths.Baseline
	}

	opts := validator.Options{
		Seeds:               certifySeeds,
		SkipMultiSeed:       certifySkipMultiSeed,
		SkipRegressionCheck: certifySkipRegression,
		Batch:               batchOptionsFromConfig(cfg),
		Comparison:          cmpOpts,
	}
	if len(opts.Seeds) == 0 {
		opts.Seeds = cfg.Defaults.Seeds
	}

	if !certifySkipRegression {
		prior, err := baseline.Load(baselinePath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading baseline %s: %w", baselinePath, err)
		}
		opts.Baseline = prior // nil on first run
	}

	v := validator.New(newProjectRunner(cfg))
	if certifyVerbose {
		v.OnPhase(func(phase validator.Phase) {
			fmt.Printf("--> %s\n", phase)
		})
	}

	var stopSpinner func()
	if !certifyVerbose {
		stopSpinner = spinner.Start(cmd.ErrOrStderr(), "Validating sequence corpus...")
	}
	result, err := v.ValidateDir(context.Background(), sequencesDir, opts)
	if stopSpinner != nil {
		stopSpinner()
	}
	if err != nil {
		return err
	}

	out, err := reporting.RenderValidation(format, result)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if certifyUpdateBaseline {
		if err := baseline.Save(baselinePath, baseline.New(result.Sequences)); err != nil {
			return fmt.Errorf("saving baseline %s: %w", baselinePath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Baseline saved to: %s\n", baselinePath)
	}

	if !result.Certified() {
		return &ParityFailureError{
			Message: fmt.Sprintf("certification level %q, aggregate parity %.2f%%",
				result.Certification.Level, result.AggregateParity),
		}
	}
	return nil
}
