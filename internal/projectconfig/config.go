// Package projectconfig provides the ProjectConfig struct and loader for
// .zorkparity.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file searched for by Load.
const ConfigFileName = ".zorkparity.yaml"

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultSequencesDir   = "sequences/"
	DefaultTranscriptsDir = "transcripts/"
	DefaultReportsDir     = "reports/"
	DefaultBaselinePath   = ".zorkparity/baseline.json"

	DefaultCandidateSource = "go"
	DefaultReferenceSource = "reference"

	DefaultFormat  = "text"
	DefaultWorkers = 4
)

// DefaultSeeds used for multi-seed validation when none are configured.
var DefaultSeeds = []int64{1, 7, 42}

// PathsConfig holds directory paths for sequences, transcripts, and reports.
type PathsConfig struct {
	Sequences   string `yaml:"sequences,omitempty"`
	Transcripts string `yaml:"transcripts,omitempty"`
	Reports     string `yaml:"reports,omitempty"`
	Baseline    string `yaml:"baseline,omitempty"`
}

// EnginesConfig names the two engine sources and where replay corpora live.
type EnginesConfig struct {
	Candidate string `yaml:"candidate,omitempty"`
	Reference string `yaml:"reference,omitempty"`
	// ReplayDir holds pre-recorded transcripts served in place of a live
	// engine; empty means the transcripts path.
	ReplayDir string `yaml:"replay_dir,omitempty"`
}

// DefaultsConfig holds default execution parameters.
type DefaultsConfig struct {
	Format        string  `yaml:"format,omitempty"`
	Parallel      *bool   `yaml:"parallel,omitempty"`
	Workers       int     `yaml:"workers,omitempty"`
	StopOnFailure *bool   `yaml:"stop_on_failure,omitempty"`
	Seeds         []int64 `yaml:"seeds,omitempty"`
	CompressStore *bool   `yaml:"compress_transcripts,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .zorkparity.yaml.
// Compare holds raw comparison option overrides; it stays a generic map here
// and is decoded by the comparator's own option decoder.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Engines  EnginesConfig  `yaml:"engines,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Compare  map[string]any `yaml:"compare,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Sequences:   DefaultSequencesDir,
			Transcripts: DefaultTranscriptsDir,
			Reports:     DefaultReportsDir,
			Baseline:    DefaultBaselinePath,
		},
		Engines: EnginesConfig{
			Candidate: DefaultCandidateSource,
			Reference: DefaultReferenceSource,
		},
		Defaults: DefaultsConfig{
			Format:        DefaultFormat,
			Parallel:      boolPtr(false),
			Workers:       DefaultWorkers,
			StopOnFailure: boolPtr(false),
			Seeds:         append([]int64(nil), DefaultSeeds...),
			CompressStore: boolPtr(false),
		},
	}
}

// Load finds .zorkparity.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// Save writes the config to dir as .zorkparity.yaml.
func Save(dir string, cfg *ProjectConfig) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", ConfigFileName, err)
	}
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", ConfigFileName, err)
	}
	return path, nil
}

// findConfigFile walks up from dir looking for .zorkparity.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates real
// I/O errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Sequences != "" {
		dst.Paths.Sequences = src.Paths.Sequences
	}
	if src.Paths.Transcripts != "" {
		dst.Paths.Transcripts = src.Paths.Transcripts
	}
	if src.Paths.Reports != "" {
		dst.Paths.Reports = src.Paths.Reports
	}
	if src.Paths.Baseline != "" {
		dst.Paths.Baseline = src.Paths.Baseline
	}

	if src.Engines.Candidate != "" {
		dst.Engines.Candidate = src.Engines.Candidate
	}
	if src.Engines.Reference != "" {
		dst.Engines.Reference = src.Engines.Reference
	}
	if src.Engines.ReplayDir != "" {
		dst.Engines.ReplayDir = src.Engines.ReplayDir
	}

	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}
	if src.Defaults.Parallel != nil {
		dst.Defaults.Parallel = src.Defaults.Parallel
	}
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.StopOnFailure != nil {
		dst.Defaults.StopOnFailure = src.Defaults.StopOnFailure
	}
	if len(src.Defaults.Seeds) > 0 {
		dst.Defaults.Seeds = src.Defaults.Seeds
	}
	if src.Defaults.CompressStore != nil {
		dst.Defaults.CompressStore = src.Defaults.CompressStore
	}

	if len(src.Compare) > 0 {
		dst.Compare = src.Compare
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// ReplayDir returns the directory replay transcripts are read from.
func (c *ProjectConfig) ReplayDir() string {
	if c.Engines.ReplayDir != "" {
		return c.Engines.ReplayDir
	}
	return c.Paths.Transcripts
}
