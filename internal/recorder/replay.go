package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/jsredmond/zorkparity/internal/transcripts"
)

// ReplayRecorder serves transcripts previously captured to disk instead of
// driving a live engine. It is the usual way to bring the reference engine's
// output into a comparison when that engine cannot run in the current
// environment.
type ReplayRecorder struct {
	dir    string
	source string
}

// NewReplayRecorder replays transcripts for the named source from dir.
func NewReplayRecorder(dir, source string) *ReplayRecorder {
	return &ReplayRecorder{dir: dir, source: source}
}

// Record loads the stored transcript for opts.SequenceID. The commands the
// caller passes must match the ones originally recorded; a mismatch means the
// replay corpus is stale and is reported as an error rather than papered over.
func (r *ReplayRecorder) Record(ctx context.Context, commands []string, opts RecordingOptions) (*models.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := transcripts.Find(r.dir, opts.SequenceID, r.source)
	if err != nil {
		return nil, err
	}
	t, err := transcripts.Read(path)
	if err != nil {
		return nil, err
	}

	if got, want := t.CommandCount(), len(commands)+1; got != want {
		return nil, fmt.Errorf("replay %s: stored transcript has %d entries, sequence expects %d", opts.SequenceID, got, want)
	}
	for i, cmd := range commands {
		if e := t.Entry(i + 1); e != nil && e.Command != cmd {
			return nil, fmt.Errorf("replay %s: entry %d recorded %q, sequence has %q", opts.SequenceID, i+1, e.Command, cmd)
		}
	}

	slog.Debug("replayed transcript", "sequence", opts.SequenceID, "source", r.source, "path", path)
	return t, nil
}

// IsAvailable reports whether the replay directory exists.
func (r *ReplayRecorder) IsAvailable() bool {
	info, err := os.Stat(r.dir)
	return err == nil && info.IsDir()
}

func (r *ReplayRecorder) Source() string {
	return r.source
}
