package broadcast

import "fmt"

// PanicError wraps a value recovered from a panicking listener.
type PanicError struct {
	Index int
	Value any
}

// Error includes the recovered value.
func (e *PanicError) Error() string {
	return fmt.Sprintf("broadcast: listener %d panicked: %v", e.Index, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
