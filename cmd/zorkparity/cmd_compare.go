package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsredmond/zorkparity/internal/comparator"
	"github.com/jsredmond/zorkparity/internal/reporting"
)

var compareOutputFormat string

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <reference.json> <candidate.json>",
		Short: "Compare two recorded transcripts",
		Long: `Compare a reference transcript against a candidate transcript.

Both files are schema-validated, normalized, and diffed command by command.
The parity score is the percentage of commands whose outputs match exactly or
within the similarity tolerance. Exits 1 when any divergence remains.`,
		Args: cobra.ExactArgs(2),
		RunE: compareCommandE,
	}

	cmd.Flags().StringVarP(&compareOutputFormat, "format", "f", "", "Output format: text, json, markdown, html (default from config)")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	cfg, cmpOpts, err := loadProject()
	if err != nil {
		return err
	}
	format, err := resolveFormat(compareOutputFormat, cfg.Defaults.Format)
	if err != nil {
		return err
	}

	ref, err := loadTranscriptChecked(args[0])
	if err != nil {
		return err
	}
	cand, err := loadTranscriptChecked(args[1])
	if err != nil {
		return err
	}

	report := comparator.New(cmpOpts).Compare(ref, cand)

	out, err := reporting.RenderDiffReport(format, report)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if len(report.Differences) > 0 {
		return &ParityFailureError{
			Message: fmt.Sprintf("%d divergence(s), parity %.2f%%", len(report.Differences), report.ParityScore),
		}
	}
	return nil
}

// resolveFormat picks the flag value over the config default.
func resolveFormat(flagValue, configValue string) (reporting.Format, error) {
	if flagValue != "" {
		return reporting.ParseFormat(flagValue)
	}
	if configValue != "" {
		return reporting.ParseFormat(configValue)
	}
	return reporting.FormatText, nil
}
