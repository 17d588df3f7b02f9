// Package recorder abstracts how transcripts are produced. A recorder drives
// one engine implementation through a command sequence and returns the
// resulting transcript; the rest of the system never talks to an engine
// directly.
package recorder

import (
	"context"

	"github.com/jsredmond/zorkparity/internal/models"
)

// RecordingOptions controls a single recording run.
type RecordingOptions struct {
	// SequenceID names the sequence being recorded and becomes the
	// transcript ID.
	SequenceID string
	// Seed fixes the engine's random number generator so combat rolls and
	// wandering-character movement replay identically.
	Seed int64
	// CaptureTimestamps stamps each entry with its capture time.
	CaptureTimestamps bool
	// PreserveFormatting keeps raw engine output byte-for-byte instead of
	// trimming trailing whitespace per entry.
	PreserveFormatting bool
	// SuppressRandomMessages asks the engine to hold back atmospheric
	// one-liners where it supports that.
	SuppressRandomMessages bool
}

// Recorder produces a transcript by running commands against one engine.
//
// Record sends each command in order, collecting output per command; entry 0
// of the returned transcript holds the engine's initial output before any
// command. IsAvailable reports whether the underlying engine can be reached
// at all, letting callers degrade gracefully when a reference binary is not
// installed.
type Recorder interface {
	Record(ctx context.Context, commands []string, opts RecordingOptions) (*models.Transcript, error)
	IsAvailable() bool
	Source() string
}
