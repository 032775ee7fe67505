// Package draft stores the task text between invocations. It is the CLI's
// equivalent of the task input field: it can be set, read and cleared, and a
// successful submission of the draft clears it.
package draft

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Store is a single-line text file.
type Store struct {
	path string
}

// New returns a store backed by path. The file is created on first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// Get returns the draft, or "" if none is saved.
func (s *Store) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Set replaces the draft. Newlines are folded to spaces.
func (s *Store) Set(text string) error {
	text = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(text)
	return os.WriteFile(s.path, []byte(text+"\n"), 0600)
}

// Clear empties the draft. Clearing an empty draft is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
