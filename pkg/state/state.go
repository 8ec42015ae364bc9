// Package state holds the session's known state: the key/value entries
// that requiresState constraints are checked against and that served
// responses transition via transitionsState/removesState.
//
// The store has an explicit create/reset lifecycle and is safe for
// concurrent use; there is no process-wide singleton.
package state

import (
	"maps"
	"sync"
)

// Store is a concurrent key/value state container.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewStore creates an empty state store.
func NewStore() *Store {
	return &Store{entries: make(map[string]string)}
}

// Get returns the value for key and whether it is present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores a value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// Delete removes a key. Removing an absent key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Snapshot returns a copy of all entries for a consistent read during
// matching.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.entries)
}

// Apply performs a served response's state transitions: sets every
// transition entry, then removes every removal key.
func (s *Store) Apply(transitions map[string]string, removals []string) {
	if len(transitions) == 0 && len(removals) == 0 {
		return
	}
	s.mu.Lock()
	for k, v := range transitions {
		s.entries[k] = v
	}
	for _, k := range removals {
		delete(s.entries, k)
	}
	s.mu.Unlock()
}

// Reset clears all entries. Idempotent.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]string)
	s.mu.Unlock()
}
