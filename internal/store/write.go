package store

import (
	"fmt"
	"os"
)

// Write durably stores data under id with all-or-nothing visibility.
//
// The sequence is: create a unique temp file in the target shard
// directory, write the full payload, fsync, close, rename onto the final
// path. Rename within a filesystem is atomic, so a reader racing this
// write sees either the prior record in full or the new record in full.
//
// On any failure the temp file is removed before the error is returned
// and the final path is untouched: old content if overwriting, absent if
// new. There is no retry and no coordination between writers on the same
// id; the last successful rename wins.
func (s *Store) Write(id string, data []byte) error {
	final, err := s.Path(id)
	if err != nil {
		return err
	}

	dir := s.shardDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create shard dir %s: %w", dir, err)
	}

	// Temp file must live in the shard dir itself: rename is only atomic
	// within one filesystem.
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", id, err)
	}
	tmpName := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp for %s: %w", id, err)
	}

	// Force the payload to stable storage before it becomes visible.
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp for %s: %w", id, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", id, err)
	}

	if err := os.Rename(tmpName, final); err != nil {
		return fmt.Errorf("rename temp onto %s: %w", final, err)
	}
	renamed = true

	return nil
}
