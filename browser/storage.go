//go:build js && wasm

package browser

import "syscall/js"

// Storage wraps window.localStorage or window.sessionStorage. Access errors
// (storage disabled, quota exceeded) read as missing keys and dropped writes.
type Storage struct {
	v js.Value
}

func newStorage(win js.Value, name string) *Storage {
	s := &Storage{v: js.Undefined()}
	func() {
		defer func() { _ = recover() }()
		s.v = win.Get(name)
	}()
	return s
}

// Get returns the stored value; ok is false for missing keys.
func (s *Storage) Get(key string) (value string, ok bool) {
	if s.v.IsUndefined() || s.v.IsNull() {
		return "", false
	}
	defer func() {
		if recover() != nil {
			value, ok = "", false
		}
	}()
	v := s.v.Call("getItem", key)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

// Set stores value under key. Failed writes are dropped.
func (s *Storage) Set(key, value string) {
	if s.v.IsUndefined() || s.v.IsNull() {
		return
	}
	defer func() { _ = recover() }()
	s.v.Call("setItem", key, value)
}
