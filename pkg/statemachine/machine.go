package statemachine

import (
	"fmt"
	"sync"
)

// Hook observes a completed transition.
type Hook[S, E comparable] func(from, to S, event E)

// Machine is a finite state machine safe for concurrent use.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[S]map[E]S
	hooks       []Hook[S, E]
}

// New creates a machine in the initial state with no transitions.
func New[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E]S),
	}
}

// Allow declares that event moves the machine from one state to another.
// Declaring the same from/event pair twice replaces the target.
func (m *Machine[S, E]) Allow(from S, event E, to S) *Machine[S, E] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.transitions[from] == nil {
		m.transitions[from] = make(map[E]S)
	}
	m.transitions[from][event] = to
	return m
}

// OnTransition registers a hook called after every successful Fire.
func (m *Machine[S, E]) OnTransition(h Hook[S, E]) *Machine[S, E] {
	if h == nil {
		return m
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, h)
	m.mu.Unlock()
	return m
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in state s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

// Can reports whether event is allowed in the current state.
func (m *Machine[S, E]) Can(event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.transitions[m.current][event]
	return ok
}

// Fire applies event. Hooks run outside the lock so they may inspect the machine.
func (m *Machine[S, E]) Fire(event E) error {
	m.mu.Lock()
	from := m.current
	to, ok := m.transitions[from][event]
	if !ok {
		m.mu.Unlock()
		return &NoTransitionError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}
	m.current = to
	hooks := append([]Hook[S, E](nil), m.hooks...)
	m.mu.Unlock()

	for _, h := range hooks {
		h(from, to, event)
	}
	return nil
}

// Reset returns the machine to its initial state without running hooks.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	m.current = m.initial
	m.mu.Unlock()
}
