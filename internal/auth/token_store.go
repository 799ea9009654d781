package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

const (
	configDirName = "spotify-radio"
	tokenFileName = "token.json"
)

// TokenStore is the persistence boundary for the user's OAuth token.
// Load returns (nil, nil) when no token has been stored yet.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
	Delete() error
}

// FileTokenStore persists the token as a JSON file on disk.
type FileTokenStore struct {
	path string
}

// DefaultTokenStore returns a FileTokenStore using the default location:
// ~/.config/spotify-radio/token.json
func DefaultTokenStore() (*FileTokenStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("getting user config dir: %w", err)
	}

	path := filepath.Join(configDir, configDirName, tokenFileName)
	return &FileTokenStore{path: path}, nil
}

// NewFileTokenStore creates a FileTokenStore with a custom path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path returns the file path where the token is stored.
func (s *FileTokenStore) Path() string {
	return s.path
}

// Load reads the stored token from disk.
// Returns (nil, nil) if the token file does not exist.
func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}

	return &token, nil
}

// Save writes the token to disk, creating the parent directory if needed.
func (s *FileTokenStore) Save(token *oauth2.Token) error {
	if token == nil {
		return errors.New("cannot save nil token")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	return nil
}

// Delete removes the stored token file.
// Returns nil if the file does not exist.
func (s *FileTokenStore) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in process memory only. Used in tests and
// for ephemeral runs where credentials should not touch the filesystem.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns the stored token, or (nil, nil) if none was saved.
func (s *MemoryTokenStore) Load() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return nil, nil
	}

	copied := *s.token
	return &copied, nil
}

// Save replaces the stored token.
func (s *MemoryTokenStore) Save(token *oauth2.Token) error {
	if token == nil {
		return errors.New("cannot save nil token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *token
	s.token = &copied
	return nil
}

// Delete clears the stored token.
func (s *MemoryTokenStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	return nil
}

// Ensure both implementations satisfy the interface
var (
	_ TokenStore = (*FileTokenStore)(nil)
	_ TokenStore = (*MemoryTokenStore)(nil)
)
