package session

import "sync"

// Store persists the AuthState. Load on an empty store returns the zero state
// with no error; Clear resets the store so a subsequent Load observes the zero
// state again.
type Store interface {
	Load() (AuthState, error)
	Save(state AuthState) error
	Clear() error
}

// MemoryStore keeps the AuthState in process memory only. It is the default
// store for tests and for hosts that manage persistence themselves.
type MemoryStore struct {
	mu    sync.RWMutex
	state AuthState
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the current state.
func (m *MemoryStore) Load() (AuthState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, nil
}

// Save replaces the current state. Last write wins.
func (m *MemoryStore) Save(state AuthState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

// Clear resets the store to the zero state.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = AuthState{}
	return nil
}
