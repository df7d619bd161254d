// Package auth manages the access/refresh token pair and serializes token
// refresh so concurrent authorization failures collapse into one refresh
// call.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Tokens is the bearer credential pair issued at login, signup, or refresh.
type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// Store holds the current token pair in memory and persists it to a single
// JSON file. Keeping both halves in one file means Set and Clear are atomic
// over the pair: a refresh token can never survive without its access token
// or vice versa.
type Store struct {
	mu     sync.RWMutex
	path   string
	tokens Tokens
	loaded bool
}

// NewStore creates a store backed by the given file path and reads any
// persisted pair. A missing file is the logged-out state, not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading tokens: %w", err)
	}

	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		// A corrupt token file is unrecoverable client state; start
		// logged out rather than failing every command.
		return s, nil
	}
	s.tokens = t
	s.loaded = t.Access != "" || t.Refresh != ""
	return s, nil
}

// Get returns the current pair and whether one is present.
func (s *Store) Get() (Tokens, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, s.loaded
}

// Access returns the current access token, or "" when logged out.
func (s *Store) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Access
}

// Refresh returns the current refresh token, or "" when logged out.
func (s *Store) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Refresh
}

// Set replaces the pair and persists it.
func (s *Store) Set(t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	s.loaded = true
	return s.persist()
}

// SetAccess replaces only the access token, keeping the refresh token.
// This is the refresh path: the server returns a new access token only.
func (s *Store) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens.Access = access
	s.loaded = true
	return s.persist()
}

// Clear removes both tokens together, in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = Tokens{}
	s.loaded = false

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing tokens: %w", err)
	}
	return nil
}

// persist writes the pair via a temp file and rename so a crash mid-write
// never leaves a half-written pair. Caller holds the lock.
func (s *Store) persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}

	data, err := json.MarshalIndent(s.tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return fmt.Errorf("creating token file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting token file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing tokens: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing token file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("saving tokens: %w", err)
	}
	return nil
}
