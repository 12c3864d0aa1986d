package scenario

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStep   = errors.New("scenario: step must name exactly one action")
	ErrNoElement     = errors.New("scenario: no element matches selector")
	ErrExpectation   = errors.New("scenario: expectation failed")
	ErrHistoryEmpty  = errors.New("scenario: nothing to go back to")
	ErrEmptyScenario = errors.New("scenario: no steps")
)

// StepError reports the failing step.
type StepError struct {
	Index int
	Kind  Kind
	Err   error
}

// Error describes the failing step.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Kind, e.Err)
}

// Unwrap returns the cause.
func (e *StepError) Unwrap() error { return e.Err }
