package testsupport

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"movierec/internal/corpus"
)

// MustOpenStore opens a corpus.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, path string) *corpus.Store {
	t.Helper()

	store, err := corpus.OpenStore(context.Background(), path)
	if err != nil {
		t.Fatalf("corpus.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Records converts fixture rows into corpus records.
func Records(rows ...Movie) []corpus.Record {
	records := make([]corpus.Record, len(rows))
	for i, row := range rows {
		records[i] = corpus.Record{
			Index:  i,
			Title:  row.Title,
			Genres: corpus.SplitGenres(row.Genres, corpus.DefaultGenreDelimiter),
		}
	}
	return records
}

// WriteForeignSQLite creates a SQLite database that movierec did not write.
func WriteForeignSQLite(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)"); err != nil {
		t.Fatalf("create notes table: %v", err)
	}
}

// SQLiteTables lists the table names in the database at path.
func SQLiteTables(t testing.TB, path string) []string {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		t.Fatalf("list tables: %v", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan table name: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate tables: %v", err)
	}
	return names
}
