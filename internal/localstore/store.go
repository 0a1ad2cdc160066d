// Package localstore persists client credentials to a small JSON file,
// mirroring the browser localStorage keys the storefront relies on:
// "authToken" and "user".
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type fileData struct {
	AuthToken string       `json:"authToken,omitempty"`
	User      *models.User `json:"user,omitempty"`
}

type Store struct {
	mu     sync.Mutex
	path   string
	data   fileData
	logger zerolog.Logger
}

// Open reads the state file once. A missing file is not an error; the
// store starts empty, like a fresh browser profile.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt state file behaves like an empty one.
		logger.Warn().Err(err).Str("path", path).Msg("State file unreadable, starting empty")
		s.data = fileData{}
	}

	return s, nil
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AuthToken
}

// User returns a copy of the stored user, or nil when signed out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.User == nil {
		return nil
	}
	u := *s.data.User
	return &u
}

// SaveCredentials stores the token/user pair. Token and user are always
// written together; partial sessions never hit disk.
func (s *Store) SaveCredentials(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.AuthToken = token
	s.data.User = user
	return s.flush()
}

// SaveUser replaces the stored user, keeping the existing token.
func (s *Store) SaveUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.User = user
	return s.flush()
}

// ClearCredentials removes both keys. Idempotent.
func (s *Store) ClearCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.AuthToken == "" && s.data.User == nil {
		return nil
	}
	s.data = fileData{}
	return s.flush()
}

func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
