// Package wizard implements the interactive project setup form behind the
// init command.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/jsredmond/zorkparity/internal/projectconfig"
	"github.com/jsredmond/zorkparity/internal/reporting"
)

// InitAnswers holds the raw answers collected during the interactive wizard.
// Numeric and list fields stay strings until Apply validates them.
type InitAnswers struct {
	SequencesDir   string
	TranscriptsDir string
	ReportsDir     string
	Candidate      string
	Reference      string
	ReplayDir      string
	Format         string
	Workers        string
	Seeds          string
	Parallel       bool
	Compress       bool
}

// answersFromConfig pre-populates the form from an existing config so
// re-running init in a configured project edits rather than resets.
func answersFromConfig(cfg *projectconfig.ProjectConfig) *InitAnswers {
	return &InitAnswers{
		SequencesDir:   cfg.Paths.Sequences,
		TranscriptsDir: cfg.Paths.Transcripts,
		ReportsDir:     cfg.Paths.Reports,
		Candidate:      cfg.Engines.Candidate,
		Reference:      cfg.Engines.Reference,
		ReplayDir:      cfg.Engines.ReplayDir,
		Format:         cfg.Defaults.Format,
		Workers:        strconv.Itoa(cfg.Defaults.Workers),
		Seeds:          formatSeeds(cfg.Defaults.Seeds),
		Parallel:       cfg.Defaults.Parallel != nil && *cfg.Defaults.Parallel,
		Compress:       cfg.Defaults.CompressStore != nil && *cfg.Defaults.CompressStore,
	}
}

// Apply validates the answers and overlays them onto a copy of base.
func (a *InitAnswers) Apply(base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	workers, err := parseWorkers(a.Workers)
	if err != nil {
		return nil, err
	}
	seeds, err := parseSeeds(a.Seeds)
	if err != nil {
		return nil, err
	}

	cfg := *base
	cfg.Paths.Sequences = strings.TrimSpace(a.SequencesDir)
	cfg.Paths.Transcripts = strings.TrimSpace(a.TranscriptsDir)
	cfg.Paths.Reports = strings.TrimSpace(a.ReportsDir)
	cfg.Engines.Candidate = strings.TrimSpace(a.Candidate)
	cfg.Engines.Reference = strings.TrimSpace(a.Reference)
	cfg.Engines.ReplayDir = strings.TrimSpace(a.ReplayDir)
	cfg.Defaults.Format = a.Format
	cfg.Defaults.Workers = workers
	cfg.Defaults.Seeds = seeds
	parallel := a.Parallel
	cfg.Defaults.Parallel = &parallel
	compress := a.Compress
	cfg.Defaults.CompressStore = &compress
	return &cfg, nil
}

// RunInitWizard runs an interactive huh form to collect project settings,
// pre-populated from base (usually the current config or defaults).
func RunInitWizard(in io.Reader, out io.Writer, base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	a := answersFromConfig(base)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sequences directory").
				Description("Where command sequence files (.txt/.seq) live").
				Value(&a.SequencesDir).
				Validate(requireValue("sequences directory")),
			huh.NewInput().
				Title("Transcripts directory").
				Description("Where recorded transcripts are stored").
				Value(&a.TranscriptsDir).
				Validate(requireValue("transcripts directory")),
			huh.NewInput().
				Title("Reports directory").
				Value(&a.ReportsDir).
				Validate(requireValue("reports directory")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Candidate engine").
				Description("Source label of the engine under test").
				Value(&a.Candidate).
				Validate(requireValue("candidate engine")),
			huh.NewInput().
				Title("Reference engine").
				Description("Source label of the trusted engine").
				Value(&a.Reference).
				Validate(requireValue("reference engine")),
			huh.NewInput().
				Title("Replay directory").
				Description("Pre-recorded transcripts served in place of a live engine (blank = transcripts directory)").
				Value(&a.ReplayDir),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default report format").
				Options(
					huh.NewOption("text", string(reporting.FormatText)),
					huh.NewOption("json", string(reporting.FormatJSON)),
					huh.NewOption("markdown", string(reporting.FormatMarkdown)),
					huh.NewOption("html", string(reporting.FormatHTML)),
				).
				Value(&a.Format),
			huh.NewInput().
				Title("Workers").
				Description("Parallel batch workers").
				Value(&a.Workers).
				Validate(func(s string) error {
					_, err := parseWorkers(s)
					return err
				}),
			huh.NewInput().
				Title("Seeds").
				Description("Comma-separated RNG seeds for multi-seed certification").
				Value(&a.Seeds).
				Validate(func(s string) error {
					_, err := parseSeeds(s)
					return err
				}),
			huh.NewConfirm().
				Title("Run batches in parallel by default?").
				Value(&a.Parallel),
			huh.NewConfirm().
				Title("Compress stored transcripts (gzip)?").
				Value(&a.Compress),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return a.Apply(base)
}

func requireValue(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func parseWorkers(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("workers must be a number")
	}
	if n < 1 || n > 64 {
		return 0, fmt.Errorf("workers must be between 1 and 64")
	}
	return n, nil
}

func parseSeeds(s string) ([]int64, error) {
	var seeds []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		seed, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q", part)
		}
		seeds = append(seeds, seed)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("at least one seed is required")
	}
	return seeds, nil
}

func formatSeeds(seeds []int64) string {
	parts := make([]string, len(seeds))
	for i, s := range seeds {
		parts[i] = strconv.FormatInt(s, 10)
	}
	return strings.Join(parts, ",")
}
