package index

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/glyphos/internal/glyph"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on glyphs.energy for threshold scans
const currentSchemaVersion = 1

// ErrNotIndexed reports a lookup for an id the catalog has never seen.
// The file store, not the catalog, decides whether the glyph exists.
var ErrNotIndexed = errors.New("glyph not indexed")

// Entry is one catalog row: a glyph id and its reserved metadata as of
// the last time the indexer saw it.
type Entry struct {
	ID              string  `json:"id"`
	ContentBytes    int64   `json:"content_bytes"`
	Energy          float64 `json:"energy"`
	ActivationCount int64   `json:"activation_count"`
	LastUpdateTime  int64   `json:"last_update_time"`
}

// Index is an advisory SQLite catalog of known glyph ids and their
// reserved metadata. The sharded file store remains the source of truth;
// the catalog exists so callers can enumerate glyphs without walking the
// shard tree, and it carries no invariants of its own. A stale or missing
// row is legal and self-heals on the next Record.
type Index struct {
	db *sql.DB
}

// Open creates or opens the catalog database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (the catalog is rebuildable)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the catalog database.
func (ix *Index) Close() error {
	if ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

// Record upserts the catalog row for a glyph. Called opportunistically
// after create/put; losing a Record is harmless because the row is
// recreated the next time the glyph is written.
func (ix *Index) Record(ctx context.Context, g glyph.Glyph) error {
	if err := glyph.ValidateID(g.ID); err != nil {
		return fmt.Errorf("record glyph: %w", err)
	}

	_, err := ix.db.ExecContext(ctx, `
		INSERT INTO glyphs
		(id, content_bytes, energy, activation_count, last_update_time)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content_bytes = excluded.content_bytes,
			energy = excluded.energy,
			activation_count = excluded.activation_count,
			last_update_time = excluded.last_update_time
	`,
		g.ID,
		int64(len(g.Content)),
		g.Energy,
		g.ActivationCount,
		g.LastUpdateTime,
	)
	if err != nil {
		return fmt.Errorf("record glyph %s: %w", g.ID, err)
	}
	return nil
}

// Get returns the catalog entry for an id, or ErrNotIndexed.
func (ix *Index) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	err := ix.db.QueryRowContext(ctx, `
		SELECT id, content_bytes, energy, activation_count, last_update_time
		FROM glyphs
		WHERE id = ?
	`, id).Scan(&e.ID, &e.ContentBytes, &e.Energy, &e.ActivationCount, &e.LastUpdateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get %s: %w", id, ErrNotIndexed)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", id, err)
	}
	return e, nil
}

// List returns up to limit catalog entries in deterministic id order.
// A non-positive limit returns everything.
func (ix *Index) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, content_bytes, energy, activation_count, last_update_time
		FROM glyphs
		ORDER BY id COLLATE BINARY ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := ix.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list glyphs: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ContentBytes, &e.Energy, &e.ActivationCount, &e.LastUpdateTime); err != nil {
			return nil, fmt.Errorf("scan glyph row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate glyph rows: %w", err)
	}
	return entries, nil
}

// Count returns the number of indexed glyphs.
func (ix *Index) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM glyphs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count glyphs: %w", err)
	}
	return n, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the energy index for databases created before v1.
// New databases get it from schema.sql.
func migrateToV1(db *sql.DB) error {
	// CREATE INDEX IF NOT EXISTS is safe - no-op if the index exists
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_glyphs_energy
		ON glyphs(energy)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}
