// Package glyph provides the core record types for GlyphOS.
//
// This package contains type definitions, identity derivation, and the
// on-disk record codec only. All other internal packages import glyph;
// glyph imports nothing internal. This ensures the record layer remains
// foundational with no circular dependencies.
//
// Key design constraints:
//   - Identity is content-addressed: DeriveID is the ONLY allocator of ids
//   - Reserved metadata (energy, activation_count, last_update_time) is
//     explicitly typed on Glyph; everything else rides in Extra untouched
//   - Encode/Decode round-trips every field, including unrecognized extra
//     metadata, byte-for-byte
package glyph
