package conversation

import (
	"context"
	"sync"
)

type memoryEntry struct {
	state State
	data  Data
}

// MemoryStore keeps conversation state in process memory. Used in tests and
// single-process development runs; state is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int64]memoryEntry
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int64]memoryEntry)}
}

// Set replaces the admin's state and payload.
func (s *MemoryStore) Set(_ context.Context, adminID int64, state State, data Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[adminID] = memoryEntry{state: state, data: data}
	return nil
}

// Get returns the admin's state and payload, or ErrNoState when absent.
func (s *MemoryStore) Get(_ context.Context, adminID int64) (State, Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[adminID]
	if !ok {
		return StateIdle, Data{}, ErrNoState
	}
	return entry.state, entry.data, nil
}

// Clear removes the admin's state.
func (s *MemoryStore) Clear(_ context.Context, adminID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, adminID)
	return nil
}
