// Package store provides durable, crash-safe byte storage keyed by
// content-addressed glyph ids.
//
// Records live one file per glyph under a two-level shard layout derived
// from the id, bounding directory fan-out:
//
//	<root>/<id[0:2]>/<id[2:4]>/glyph_<id>.json
//
// # Crash-safety contract
//
// Write creates a uniquely-named temp file inside the target shard
// directory, writes the complete payload, fsyncs, then renames onto the
// final path. Rename within one filesystem is atomic, so readers observe
// either the complete prior version or the complete new version, never a
// mixture. On any failure the temp file is removed and the final path is
// left exactly as it was.
//
// # Concurrency contract
//
// Writers targeting different ids never interfere (disjoint paths, disjoint
// temp files). Writers targeting the same id race at the filesystem level:
// there is no locking and no versioning, the last successful rename wins.
//
// All operations are synchronous blocking calls bounded by I/O latency;
// none are cancellable and none define a timeout. Callers needing bounded
// latency impose their own deadline externally. The store never retries;
// every failure propagates to the caller.
package store
