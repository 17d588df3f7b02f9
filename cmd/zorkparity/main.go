package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Perfect parity / command succeeded
	ExitParityFailure = 1 // Engines diverged or certification not reached
	ExitError         = 2 // Configuration or runtime error
)

// ParityFailureError indicates that the comparison ran successfully,
// but the candidate engine diverged from the reference.
type ParityFailureError struct {
	Message string
}

func (e *ParityFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var parityErr *ParityFailureError
		if errors.As(err, &parityErr) {
			os.Exit(ExitParityFailure)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
