package session

import (
	"sync"
)

// Store holds the current State for the UI event loop and the goroutines
// completing backend requests. Readers get a snapshot and never hold the lock
// while rendering.
type Store struct {
	mu      sync.RWMutex
	reducer Reducer
	state   State
}

// NewStore returns a store with an empty form.
func NewStore(r Reducer) *Store {
	return &Store{reducer: r}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Apply reduces cmd into the current state and replaces it wholesale.
func (s *Store) Apply(cmd Command) (State, *Dispatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, d, err := s.reducer.Apply(s.state, cmd)
	s.state = next
	return next, d, err
}
