package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsredmond/zorkparity/internal/transcripts"
)

func newTranscriptsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcripts",
		Short: "Inspect the recorded transcript corpus",
	}

	cmd.AddCommand(newTranscriptsListCommand())

	return cmd
}

func newTranscriptsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [transcripts-dir]",
		Short: "List stored transcripts by sequence and source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := transcriptsDirArg(args)
			if err != nil {
				return err
			}
			loaded, err := transcripts.LoadDir(dir)
			if err != nil {
				return err
			}

			for _, tr := range loaded {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-12s %4d entries\n", tr.ID, tr.Source, len(tr.Entries))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d transcript(s)\n", len(loaded))
			return nil
		},
	}
}

func transcriptsDirArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, _, err := loadProject()
	if err != nil {
		return "", err
	}
	return cfg.Paths.Transcripts, nil
}
