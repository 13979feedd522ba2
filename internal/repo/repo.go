package repo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/glyphos/internal/glyph"
	"github.com/roach88/glyphos/internal/store"
)

// ErrIDMismatch reports a checked put whose id does not match the digest
// of its content.
var ErrIDMismatch = errors.New("glyph id does not match content digest")

// Repository persists glyph records in a sharded store under
// content-addressed identities.
type Repository struct {
	store *store.Store
}

// New creates a repository over the given store.
func New(s *store.Store) *Repository {
	return &Repository{store: s}
}

// Create derives an identity for content, fills in reserved metadata
// defaults (energy=0, activation_count=0, last_update_time=0), applies
// caller-supplied metadata, and persists the record.
//
// Reserved fields supplied by the caller take precedence over the
// defaults; unrecognized fields pass through to storage unchanged. A
// reserved field of the wrong JSON type is rejected before anything is
// written.
//
// Returns the derived id and the fully-populated glyph.
func (r *Repository) Create(content string, metadata map[string]json.RawMessage) (string, glyph.Glyph, error) {
	g := glyph.New(content)

	for k, v := range metadata {
		var err error
		switch k {
		case glyph.FieldEnergy:
			err = json.Unmarshal(v, &g.Energy)
		case glyph.FieldActivationCount:
			err = json.Unmarshal(v, &g.ActivationCount)
		case glyph.FieldLastUpdateTime:
			err = json.Unmarshal(v, &g.LastUpdateTime)
		default:
			if g.Extra == nil {
				g.Extra = make(map[string]json.RawMessage)
			}
			g.Extra[k] = v
		}
		if err != nil {
			return "", glyph.Glyph{}, fmt.Errorf("create glyph: metadata field %q: %w", k, err)
		}
	}

	if err := r.Put(g); err != nil {
		return "", glyph.Glyph{}, err
	}
	return g.ID, g, nil
}

// Get fetches and decodes the record stored under id.
//
// A missing record surfaces store.ErrNotFound. A record that exists but
// does not parse, or that carries a different id than the path it was
// stored under, surfaces a *glyph.DecodeError. The two are distinct:
// absence is expected, corruption is not.
func (r *Repository) Get(id string) (glyph.Glyph, error) {
	data, err := r.store.Read(id)
	if err != nil {
		return glyph.Glyph{}, err
	}

	g, err := glyph.Decode(data)
	if err != nil {
		return glyph.Glyph{}, err
	}
	if g.ID != id {
		return glyph.Glyph{}, &glyph.DecodeError{
			ID:     id,
			Reason: fmt.Sprintf("record carries id %s", g.ID),
		}
	}
	return g, nil
}

// Put overwrites the record at g.ID with the glyph's serialized form.
//
// Put does NOT re-check that g.ID == DeriveID(g.Content). This is the
// deliberate fast path for metadata-only updates (decay, activation):
// re-hashing unchanged content on every step would be pure waste. The
// cost is that a caller who mutates Content without re-deriving ID can
// persist a record whose identity lies. Callers that cannot rule that
// out should use PutChecked.
func (r *Repository) Put(g glyph.Glyph) error {
	data, err := glyph.Encode(g)
	if err != nil {
		return err
	}
	return r.store.Write(g.ID, data)
}

// PutChecked is Put with the id/content binding re-verified. It rejects
// a glyph whose id is not the digest of its content with ErrIDMismatch.
func (r *Repository) PutChecked(g glyph.Glyph) error {
	if derived := glyph.DeriveID(g.Content); derived != g.ID {
		return fmt.Errorf("put %s: content digests to %s: %w", g.ID, derived, ErrIDMismatch)
	}
	return r.Put(g)
}
