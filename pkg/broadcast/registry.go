package broadcast

import (
	"errors"
	"sync"
)

// Listener receives emitted values.
type Listener[T any] func(T)

type entry[T any] struct {
	id uint64
	fn Listener[T]
}

// Registry holds listeners for values of type T. The zero value is ready to use
// and safe for concurrent use.
type Registry[T any] struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []entry[T]
}

// Add registers fn and returns a function that removes it.
// Nil listeners are ignored.
func (r *Registry[T]) Add(fn Listener[T]) (remove func()) {
	if fn == nil {
		return func() {}
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, entry[T]{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *Registry[T]) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.listeners {
		if e.id == id {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Emit calls every listener with v in registration order. Listeners added or
// removed during Emit take effect from the next call.
func (r *Registry[T]) Emit(v T) error {
	r.mu.RLock()
	snapshot := make([]entry[T], len(r.listeners))
	copy(snapshot, r.listeners)
	r.mu.RUnlock()

	var errs []error
	for i, e := range snapshot {
		if err := call(i, e.fn, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len reports the number of registered listeners.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

func call[T any](i int, fn Listener[T], v T) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Index: i, Value: rec}
		}
	}()
	fn(v)
	return nil
}
