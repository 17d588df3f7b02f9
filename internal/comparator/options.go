package comparator

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Default similarity thresholds. These are empirically chosen starting points,
// not derived constants — callers tune them per corpus via Options.
const (
	DefaultToleranceThreshold = 0.95
	DefaultMinorThreshold     = 0.85
	DefaultMajorThreshold     = 0.50
)

// Options controls which classes of non-behavioral noise are stripped before
// comparison and where the similarity severity bands sit. Each option is
// independent and they compose; none may remove content that changes game
// semantics.
type Options struct {
	StripGameHeader           bool `mapstructure:"strip_game_header" yaml:"strip_game_header"`
	StripStatusBar            bool `mapstructure:"strip_status_bar" yaml:"strip_status_bar"`
	NormalizeLineWrapping     bool `mapstructure:"normalize_line_wrapping" yaml:"normalize_line_wrapping"`
	NormalizeWhitespace       bool `mapstructure:"normalize_whitespace" yaml:"normalize_whitespace"`
	FilterAtmosphericMessages bool `mapstructure:"filter_atmospheric_messages" yaml:"filter_atmospheric_messages"`
	FilterLoadingMessages     bool `mapstructure:"filter_loading_messages" yaml:"filter_loading_messages"`
	NormalizeErrorMessages    bool `mapstructure:"normalize_error_messages" yaml:"normalize_error_messages"`
	StrictContentOnly         bool `mapstructure:"strict_content_only" yaml:"strict_content_only"`
	IgnoreCaseInMessages      bool `mapstructure:"ignore_case_in_messages" yaml:"ignore_case_in_messages"`

	// ToleranceThreshold is the minimum similarity for a close match.
	ToleranceThreshold float64 `mapstructure:"tolerance_threshold" yaml:"tolerance_threshold"`
	// MinorThreshold is the minimum similarity for a minor (vs major) difference.
	MinorThreshold float64 `mapstructure:"minor_threshold" yaml:"minor_threshold"`
	// MajorThreshold is the minimum similarity for a major (vs critical) difference.
	MajorThreshold float64 `mapstructure:"major_threshold" yaml:"major_threshold"`

	// KnownVariations lists substring markers for output families the team has
	// reviewed and accepted; a divergence containing one is capped at minor.
	KnownVariations []string `mapstructure:"known_variations" yaml:"known_variations"`

	// TolerateCombatVariance caps combat-command divergences at minor severity.
	// Whether combat-outcome nondeterminism should be tolerated here or fixed
	// upstream in the engine is an open disagreement, so it stays a knob rather
	// than a baked-in decision.
	TolerateCombatVariance bool `mapstructure:"tolerate_combat_variance" yaml:"tolerate_combat_variance"`
}

// DefaultOptions returns the normalization profile used when a caller supplies
// nothing: all structural-noise filters on, strict content mode off, default
// severity bands.
func DefaultOptions() Options {
	return Options{
		StripGameHeader:           true,
		StripStatusBar:            true,
		NormalizeLineWrapping:     true,
		NormalizeWhitespace:       true,
		FilterAtmosphericMessages: true,
		FilterLoadingMessages:     true,
		NormalizeErrorMessages:    true,
		ToleranceThreshold:        DefaultToleranceThreshold,
		MinorThreshold:            DefaultMinorThreshold,
		MajorThreshold:            DefaultMajorThreshold,
	}
}

// DecodeOptions overlays a generic key/value map (project config, sequence
// metadata) onto the defaults. Unknown keys are ignored; known keys must have
// compatible types.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}
	if err := mapstructure.Decode(raw, &opts); err != nil {
		return opts, fmt.Errorf("decoding comparison options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks that the severity bands are ordered and in range.
func (o Options) Validate() error {
	for name, v := range map[string]float64{
		"tolerance_threshold": o.ToleranceThreshold,
		"minor_threshold":     o.MinorThreshold,
		"major_threshold":     o.MajorThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}
	if o.MajorThreshold > o.MinorThreshold {
		return fmt.Errorf("major_threshold (%v) must not exceed minor_threshold (%v)",
			o.MajorThreshold, o.MinorThreshold)
	}
	return nil
}
