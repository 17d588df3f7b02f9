package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zorkparity",
		Short: "Zorkparity - behavioral parity validation for Zork engine ports",
		Long: `Zorkparity validates that a reimplemented Zork engine behaves identically
to the reference interpreter.

It records command sequences against both engines, normalizes and diffs the
transcripts, classifies divergences by severity and subsystem, and certifies
perfect behavioral parity across multiple RNG seeds.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newBatchCommand())
	cmd.AddCommand(newCertifyCommand())
	cmd.AddCommand(newSequencesCommand())
	cmd.AddCommand(newTranscriptsCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
