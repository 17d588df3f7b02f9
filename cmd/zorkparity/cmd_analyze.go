package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsredmond/zorkparity/internal/analyzer"
	"github.com/jsredmond/zorkparity/internal/comparator"
	"github.com/jsredmond/zorkparity/internal/reporting"
)

var analyzeOutputFormat string

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <reference.json> <candidate.json>",
		Short: "Root-cause analysis of transcript divergences",
		Long: `Compare two transcripts and run deep analysis on every divergence.

Each difference is classified by type (missing/extra output, formatting,
random behavior, state divergence), mapped to the engine subsystems most
likely responsible, and turned into ranked fix recommendations with estimated
parity improvements.`,
		Args: cobra.ExactArgs(2),
		RunE: analyzeCommandE,
	}

	cmd.Flags().StringVarP(&analyzeOutputFormat, "format", "f", "", "Output format: text, json, markdown, html (default from config)")

	return cmd
}

func analyzeCommandE(cmd *cobra.Command, args []string) error {
	cfg, cmpOpts, err := loadProject()
	if err != nil {
		return err
	}
	format, err := resolveFormat(analyzeOutputFormat, cfg.Defaults.Format)
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
	result := analyzer.New().AnalyzeReport(report, ref, cand, cand.ID)

	out, err := reporting.RenderAnalysis(format, result)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
