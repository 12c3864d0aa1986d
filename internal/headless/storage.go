package headless

import "sync"

// Storage is an in-memory dom.Storage.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Storage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *Storage) Set(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}
