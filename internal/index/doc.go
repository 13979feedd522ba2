// Package index provides an advisory SQLite catalog over the glyph store.
//
// The sharded file store answers "give me glyph X"; it cannot cheaply
// answer "what glyphs are there". The catalog fills that gap: one row per
// known glyph id with its reserved metadata, updated opportunistically
// after create/put. It is deliberately not transactional with the file
// store (multi-record atomicity is out of scope), so rows may be stale or
// missing; every row is rebuildable from the record it points at.
package index
