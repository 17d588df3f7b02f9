package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsredmond/zorkparity/internal/sequence"
)

func newSequencesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequences",
		Short: "Inspect the command sequence corpus",
	}

	cmd.AddCommand(newSequencesListCommand())
	cmd.AddCommand(newSequencesCheckCommand())

	return cmd
}

func newSequencesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [sequences-dir]",
		Short: "List sequence files and their command counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := sequencesDirArg(args)
			if err != nil {
				return err
			}
			sequences, err := sequence.LoadDir(dir)
			if err != nil {
				return err
			}

			for _, seq := range sequences {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %4d commands  %s\n", seq.ID, seq.CommandCount(), seq.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d sequence(s)\n", len(sequences))
			return nil
		},
	}
}

func newSequencesCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [sequences-dir]",
		Short: "Parse every sequence file and report syntax errors",
		Long: `Parse every sequence file in the corpus, following @include directives,
and report parse errors with file and line positions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := sequencesDirArg(args)
			if err != nil {
				return err
			}
			sequences, err := sequence.LoadDir(dir)
			if err != nil {
				// LoadDir returns the sequences that did parse alongside the
				// joined errors; show what succeeded before failing.
				fmt.Fprintf(cmd.OutOrStdout(), "%d sequence(s) parsed\n", len(sequences))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d sequence(s) parsed, no errors\n", len(sequences))
			return nil
		},
	}
}

func sequencesDirArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, _, err := loadProject()
	if err != nil {
		return "", err
	}
	return cfg.Paths.Sequences, nil
}
