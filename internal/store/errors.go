package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no record exists at the path derived from the
// requested id. Callers branch on it with errors.Is; it is distinct from
// corruption (a record that exists but fails to decode) and from I/O
// failures (the read or write sequence itself failing).
var ErrNotFound = errors.New("glyph not found")

// KeyError reports an id that cannot be mapped to a storage path.
// Ids must be 64 lowercase hex characters as produced by glyph.DeriveID.
type KeyError struct {
	ID  string
	Err error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid store key %q: %v", e.ID, e.Err)
}

// Unwrap returns the underlying validation error.
func (e *KeyError) Unwrap() error {
	return e.Err
}
