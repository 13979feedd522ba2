package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/glyphos/internal/glyph"
)

// recordExt is the extension of persisted glyph records.
const recordExt = ".json"

// tempPrefix names in-flight temp files inside a shard directory.
// A crash can strand one; stranded temps are inert (readers never look
// at them) and cheap to sweep externally.
const tempPrefix = ".tmp_glyph_"

// Store is a sharded filesystem map from glyph id to record bytes.
// The root directory is injected at construction; there is no ambient
// lookup of a storage location anywhere in this package.
type Store struct {
	root string
}

// New creates a store rooted at the given directory, creating it if
// needed. The root must live on a single filesystem for rename atomicity.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("store root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Path derives the final storage path for an id:
// <root>/<id[0:2]>/<id[2:4]>/glyph_<id>.json.
// The id is validated first; a malformed id yields a *KeyError.
func (s *Store) Path(id string) (string, error) {
	if err := glyph.ValidateID(id); err != nil {
		return "", &KeyError{ID: id, Err: err}
	}
	return filepath.Join(s.root, id[0:2], id[2:4], "glyph_"+id+recordExt), nil
}

// shardDir derives the directory portion of an id's path.
func (s *Store) shardDir(id string) string {
	return filepath.Join(s.root, id[0:2], id[2:4])
}
