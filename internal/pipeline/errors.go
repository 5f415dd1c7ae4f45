package pipeline

import (
	"errors"
	"fmt"
)

// ErrRunInFlight rejects a Start while another run is between Analyzing and
// its completion. No concurrent runs.
var ErrRunInFlight = errors.New("a generation run is already in flight")

// ErrRunSuperseded reports that a run resolved after a Reset rotated the run
// token; its results were discarded.
var ErrRunSuperseded = errors.New("run superseded by reset; results discarded")

// ValidationError blocks Start synchronously without a state transition.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid input: " + e.Reason }

// GatewayError aborts a run mid-flight. The run is retryable by calling
// Start again with the same or edited inputs.
type GatewayError struct {
	Stage State
	Err   error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("generation failed during %s: %v", e.Stage, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
