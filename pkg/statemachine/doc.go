// Package statemachine provides a small typed finite state machine.
//
// States and events are any comparable types, usually string-based enums.
// Transitions are declared up front with Allow; Fire moves the machine or
// returns a *NoTransitionError without changing state. OnTransition hooks run
// after each successful move and are the place for logging.
//
//	m := statemachine.New[State, Event](StateIdle).
//	    Allow(StateIdle, EventStart, StateRunning).
//	    Allow(StateRunning, EventFail, StateFailed)
//	if err := m.Fire(EventStart); err != nil { ... }
package statemachine
