package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey is the single namespaced key under which the AuthState is
// persisted. Keeping everything under one key makes Clear atomic.
const StorageKey = "cementops.admin.auth_state"

// FileStore persists the AuthState to a JSON file so the session survives
// process restarts. Cached query data is deliberately not persisted.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a durable store backed by the file at path. The file
// and its parent directory are created lazily on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted state. A missing file means logged out.
func (f *FileStore) Load() (AuthState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return AuthState{}, nil
	}
	if err != nil {
		return AuthState{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var records map[string]AuthState
	if err := json.Unmarshal(data, &records); err != nil {
		return AuthState{}, fmt.Errorf("failed to decode session file: %w", err)
	}
	return records[StorageKey], nil
}

// Save writes the state under StorageKey. Token material gets 0600.
func (f *FileStore) Save(state AuthState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(map[string]AuthState{StorageKey: state}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the backing file. Clearing an empty store is not an error.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
