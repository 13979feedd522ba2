package glyph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// IDLength is the length of a glyph id: SHA-256 as lowercase hex.
const IDLength = 64

// DeriveID computes the content-addressed id for a glyph.
// The id is SHA-256 over the raw content bytes, hex encoded.
//
// DeriveID is the sole source of identity in the system. Equal content
// always yields equal ids; the id is stable across restarts.
//
// The content bytes are hashed as-is, with no normalization. Two strings
// that render identically but differ in byte representation are distinct
// glyphs.
func DeriveID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ValidateID checks that an id has the shape DeriveID produces:
// exactly 64 lowercase hex characters. It does NOT verify that the id
// matches any particular content.
func ValidateID(id string) error {
	if len(id) != IDLength {
		return fmt.Errorf("invalid glyph id %q: length %d, want %d", id, len(id), IDLength)
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return fmt.Errorf("invalid glyph id %q: non-hex character %q at offset %d", id, c, i)
		}
	}
	return nil
}
