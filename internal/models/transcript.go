package models

import (
	"fmt"
	"time"
)

// Transcript is the ordered record of one engine run: every command sent to
// the engine paired with the text the engine produced. Transcripts are created
// once by a recorder and never mutated afterwards; the comparator only reads
// them.
type Transcript struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
	Entries   []TranscriptEntry `json:"entries"`
}

// TranscriptEntry is a single step of a transcript. Entry 0 always has an
// empty command and holds the engine's initial output (banner, opening room
// description).
type TranscriptEntry struct {
	Index      int        `json:"index"`
	Command    string     `json:"command"`
	Output     string     `json:"output"`
	Turn       int        `json:"turn"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// Entry returns the entry at index, or nil if the transcript has no entry
// there. Lengths may legitimately differ between two recordings of the same
// sequence when one engine aborted early, so callers must handle nil.
func (t *Transcript) Entry(index int) *TranscriptEntry {
	if index < 0 || index >= len(t.Entries) {
		return nil
	}
	return &t.Entries[index]
}

// CommandCount returns the number of entries, including the initial entry.
func (t *Transcript) CommandCount() int {
	return len(t.Entries)
}

// Validate checks the structural invariants: indices are sequential from 0
// and entry 0 carries no command.
func (t *Transcript) Validate() error {
	for i, e := range t.Entries {
		if e.Index != i {
			return fmt.Errorf("transcript %s: entry %d has index %d, want %d", t.ID, i, e.Index, i)
		}
	}
	if len(t.Entries) > 0 && t.Entries[0].Command != "" {
		return fmt.Errorf("transcript %s: entry 0 must have an empty command, got %q", t.ID, t.Entries[0].Command)
	}
	return nil
}
