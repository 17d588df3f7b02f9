package recorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jsredmond/zorkparity/internal/models"
)

// ScriptFunc produces the outputs for one recording run: one string per
// command plus the leading initial output, so the result must have
// len(commands)+1 elements.
type ScriptFunc func(sequenceID string, seed int64, commands []string) ([]string, error)

// ScriptedRecorder synthesizes transcripts from a script function. It backs
// engines that are embedded in-process and is the recorder used throughout
// the test suite.
type ScriptedRecorder struct {
	source string
	script ScriptFunc

	// Unavailable makes IsAvailable report false, simulating a missing
	// engine binary.
	Unavailable bool
}

// NewScriptedRecorder builds a recorder for source backed by script.
func NewScriptedRecorder(source string, script ScriptFunc) *ScriptedRecorder {
	return &ScriptedRecorder{source: source, script: script}
}

// FixedScript returns a ScriptFunc that replays canned outputs keyed by
// sequence ID, ignoring the seed.
func FixedScript(outputs map[string][]string) ScriptFunc {
	return func(sequenceID string, _ int64, _ []string) ([]string, error) {
		out, ok := outputs[sequenceID]
		if !ok {
			return nil, fmt.Errorf("no scripted outputs for sequence %q", sequenceID)
		}
		return out, nil
	}
}

func (r *ScriptedRecorder) Record(ctx context.Context, commands []string, opts RecordingOptions) (*models.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputs, err := r.script(opts.SequenceID, opts.Seed, commands)
	if err != nil {
		return nil, err
	}
	if len(outputs) != len(commands)+1 {
		return nil, fmt.Errorf("script for %q produced %d outputs, want %d", opts.SequenceID, len(outputs), len(commands)+1)
	}

	started := time.Now()
	t := &models.Transcript{
		ID:        opts.SequenceID,
		Source:    r.source,
		StartedAt: started,
	}
	for i, out := range outputs {
		if !opts.PreserveFormatting {
			out = strings.TrimRight(out, " \t\n")
		}
		entry := models.TranscriptEntry{Index: i, Output: out, Turn: i}
		if i > 0 {
			entry.Command = commands[i-1]
		}
		if opts.CaptureTimestamps {
			now := time.Now()
			entry.CapturedAt = &now
		}
		t.Entries = append(t.Entries, entry)
	}
	t.EndedAt = time.Now()
	return t, nil
}

func (r *ScriptedRecorder) IsAvailable() bool {
	return !r.Unavailable
}

func (r *ScriptedRecorder) Source() string {
	return r.source
}
