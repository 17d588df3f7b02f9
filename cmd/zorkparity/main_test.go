package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParityFailureError(t *testing.T) {
	err := &ParityFailureError{
		Message: "3 divergence(s), parity 82.50%",
	}

	assert.Equal(t, "3 divergence(s), parity 82.50%", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
	}{
		{
			name:     "ParityFailureError",
			err:      &ParityFailureError{Message: "parity failure"},
			wantType: "ParityFailureError",
		},
		{
			name:     "regular error",
			err:      errors.New("config error"),
			wantType: "other",
		},
		{
			name:     "wrapped ParityFailureError",
			err:      errors.Join(&ParityFailureError{Message: "parity failure"}, errors.New("additional context")),
			wantType: "ParityFailureError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parityErr *ParityFailureError
			isParityFailure := errors.As(tt.err, &parityErr)

			if tt.wantType == "ParityFailureError" {
				assert.True(t, isParityFailure, "expected error to be detected as ParityFailureError")
			} else {
				assert.False(t, isParityFailure, "expected error NOT to be detected as ParityFailureError")
			}
		})
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"compare", "analyze", "batch", "certify", "sequences", "transcripts", "init"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
