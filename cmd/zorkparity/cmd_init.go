package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsredmond/zorkparity/internal/projectconfig"
	"github.com/jsredmond/zorkparity/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a parity validation project",
		Long: `Initialize a project directory for parity validation.

Creates a .zorkparity.yaml config file plus the sequences/, transcripts/, and
reports/ directories.

Use --interactive to run a guided wizard that collects engine names, paths,
and execution defaults.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run guided project setup wizard")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// Create the root directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	cfg := projectconfig.New()

	// Run interactive wizard if requested
	if interactive {
		var err error
		cfg, err = wizard.RunInitWizard(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
		if err != nil {
			return err
		}
	}

	path, err := projectconfig.Save(dir, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", path) //nolint:errcheck

	for _, sub := range []string{cfg.Paths.Sequences, cfg.Paths.Transcripts, cfg.Paths.Reports} {
		subDir := filepath.Join(dir, sub)
		if err := os.MkdirAll(subDir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", subDir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", subDir) //nolint:errcheck
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nProject initialized. Drop sequence files into the sequences directory and run 'zorkparity batch'.")
	return nil
}
