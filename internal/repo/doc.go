// Package repo composes content addressing and the sharded store into the
// glyph repository: create, fetch, and overwrite operations over persisted
// glyph records.
//
// The repository owns the on-disk record schema (via glyph.Encode/Decode)
// but delegates identity to glyph.DeriveID and durability to store.Store.
// It holds no state of its own beyond the injected store, so a single
// Repository is safe for concurrent use with exactly the store's
// concurrency contract.
package repo
