package store

import (
	"fmt"
	"os"
)

// Read returns the stored bytes for id. Returns ErrNotFound (wrapped with
// the id for context) if no record exists at the derived path. Any other
// failure is an I/O error from the underlying filesystem.
func (s *Store) Read(id string) ([]byte, error) {
	path, err := s.Path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", id, err)
	}
	return data, nil
}

// Exists reports whether a record is present for id without reading it.
func (s *Store) Exists(id string) (bool, error) {
	path, err := s.Path(id)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", id, err)
	}
	return true, nil
}
