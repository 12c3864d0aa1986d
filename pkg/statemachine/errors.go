package statemachine

import (
	"errors"
	"fmt"
)

// ErrNoTransition is matched by every *NoTransitionError.
var ErrNoTransition = errors.New("no transition available")

// NoTransitionError reports an event that is not allowed in the current state.
type NoTransitionError struct {
	State string
	Event string
}

// Error names the state and the rejected event.
func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

// Is matches ErrNoTransition.
func (e *NoTransitionError) Is(target error) bool {
	return target == ErrNoTransition
}
