package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Store holds the single persisted piece of client state: the bearer token.
// It is created once in main and handed explicitly to every view, so token
// readers are visible in each view's dependencies instead of reaching into
// ambient storage.
type Store struct {
	path  string
	token string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the token file. A missing file is not an error; it just means
// no session.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.token = ""
			return nil
		}
		return err
	}
	s.token = strings.TrimSpace(string(data))
	return nil
}

func (s *Store) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear destroys the session. Removing an already-absent file is fine.
func (s *Store) Clear() error {
	s.token = ""
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) Token() string {
	return s.token
}

func (s *Store) Present() bool {
	return s.token != ""
}
