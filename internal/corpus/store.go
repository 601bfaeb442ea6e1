package corpus

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 2

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists a corpus in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the corpus database.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenStoreReadOnly connects to an existing corpus database without creating
// files or tables. A database without a matching schema_version table is
// rejected with ErrSchemaMismatch.
func OpenStoreReadOnly(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Connection pragmas only hold for a single pooled connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma %q: %w", "PRAGMA busy_timeout = 5000", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma %q: %w", "PRAGMA query_only = ON", err)
	}

	store := &Store{db: db, path: path}
	exists, err := store.hasSchemaTable(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if !exists {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s is not a movierec corpus database (run 'movierec corpus import')",
			ErrSchemaMismatch, path)
	}
	if err := store.checkVersion(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	exists, err := s.hasSchemaTable(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return s.createSchema(ctx)
	}
	return s.checkVersion(ctx)
}

func (s *Store) hasSchemaTable(ctx context.Context) (bool, error) {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return false, fmt.Errorf("check schema_version table: %w", err)
	}
	return tableExists > 0, nil
}

func (s *Store) checkVersion(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (re-run 'movierec corpus import')",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Replace swaps the stored corpus for records, preserving their order.
func (s *Store) Replace(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO movies (position, title, genres) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		genres, err := encodeGenres(rec.Genres)
		if err != nil {
			return fmt.Errorf("encode genres for %q: %w", rec.Title, err)
		}
		if _, err := stmt.ExecContext(ctx, i, rec.Title, genres); err != nil {
			return fmt.Errorf("insert movie %q: %w", rec.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Count returns the number of stored movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// Records loads the stored corpus in position order.
func (s *Store) Records(ctx context.Context, opts Options) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT position, title, genres FROM movies ORDER BY position")
	if err != nil {
		return nil, newLoadError(s.path, "query movies", err)
	}
	defer rows.Close()

	b := newBuilder(ctx, s.path, opts)
	for rows.Next() {
		var (
			position int
			title    string
			genres   sql.NullString
		)
		if err := rows.Scan(&position, &title, &genres); err != nil {
			return nil, newLoadError(s.path, "scan movie", err)
		}
		decoded, err := decodeGenres(genres.String)
		if err != nil {
			return nil, newLoadError(s.path, fmt.Sprintf("decode genres at position %d", position), err)
		}
		b.addGenres(position, title, decoded)
	}
	if err := rows.Err(); err != nil {
		return nil, newLoadError(s.path, "iterate movies", err)
	}
	return b.finish()
}

// Genres are stored as a JSON array so tags survive intact whatever
// delimiter the source dataset used.
func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeGenres(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, err
	}
	return genres, nil
}
