package batch

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

const (
	// DefaultMaxConcurrency bounds the parallel worker pool when the caller
	// does not set one.
	DefaultMaxConcurrency = 4
	// DefaultWorstCount is how many worst-performing sequences a batch
	// result surfaces.
	DefaultWorstCount = 5
)

// Options controls batch execution.
type Options struct {
	// Parallel runs sequences on a bounded worker pool instead of one at a
	// time.
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`
	// MaxConcurrency caps the pool size; the effective size is
	// min(MaxConcurrency, sequence count).
	MaxConcurrency int `mapstructure:"max_concurrency" yaml:"max_concurrency"`
	// StopOnFailure stops admitting new sequences after a failed one.
	// In-flight sequences always finish.
	StopOnFailure bool `mapstructure:"stop_on_failure" yaml:"stop_on_failure"`
	// WorstCount is the size of the worst-sequences list.
	WorstCount int `mapstructure:"worst_count" yaml:"worst_count"`
}

// DefaultBatchOptions returns sequential execution with default limits.
func DefaultBatchOptions() Options {
	return Options{
		MaxConcurrency: DefaultMaxConcurrency,
		WorstCount:     DefaultWorstCount,
	}
}

// DecodeBatchOptions overlays a generic key/value map (project config) onto
// the defaults.
func DecodeBatchOptions(raw map[string]any) (Options, error) {
	opts := DefaultBatchOptions()
	if len(raw) == 0 {
		return opts, nil
	}
	if err := mapstructure.Decode(raw, &opts); err != nil {
		return opts, fmt.Errorf("decoding batch options: %w", err)
	}
	return opts, nil
}

func (o Options) normalized(sequenceCount int) Options {
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = DefaultMaxConcurrency
	}
	if o.MaxConcurrency > sequenceCount {
		o.MaxConcurrency = sequenceCount
	}
	if o.WorstCount <= 0 {
		o.WorstCount = DefaultWorstCount
	}
	return o
}
