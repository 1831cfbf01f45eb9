package shell

import "fmt"

// RoundInitError is returned when the round-start sequence kept failing.
type RoundInitError struct {
	Attempts int
	Err      error // last failure
}

func (e *RoundInitError) Error() string {
	return fmt.Sprintf("round start failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RoundInitError) Unwrap() error { return e.Err }
