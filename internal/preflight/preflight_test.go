package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movierec/internal/config"
	"movierec/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "movies.csv")
	testsupport.WriteFile(t, f, "title,genres\n")

	if res := CheckFileReadable("corpus", f); !res.Passed {
		t.Fatalf("expected pass, got: %s", res.Detail)
	}
	if res := CheckFileReadable("corpus", dir); res.Passed {
		t.Fatal("expected failure for directory")
	}
	res := CheckFileReadable("corpus", "")
	if res.Passed || !strings.Contains(res.Detail, "not configured") {
		t.Fatalf("expected not configured failure, got %+v", res)
	}
}

func TestCheckCorpusDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.db")

	if res := CheckCorpusDatabase(ctx, "db", path); res.Passed {
		t.Fatal("expected failure for missing database")
	}

	store := testsupport.MustOpenStore(t, path)
	if res := CheckCorpusDatabase(ctx, "db", path); res.Passed || !strings.Contains(res.Detail, "no movies") {
		t.Fatalf("expected empty database failure, got %+v", res)
	}

	if err := store.Replace(ctx, testsupport.Records(testsupport.SampleMovies...)); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	res := CheckCorpusDatabase(ctx, "db", path)
	if !res.Passed || !strings.Contains(res.Detail, "3 movies") {
		t.Fatalf("expected pass with 3 movies, got %+v", res)
	}
}

func TestCheckCorpusDatabase_ForeignDatabaseUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	testsupport.WriteForeignSQLite(t, path)

	res := CheckCorpusDatabase(context.Background(), "db", path)
	if res.Passed || !strings.Contains(res.Detail, "schema version mismatch") {
		t.Fatalf("expected schema mismatch failure, got %+v", res)
	}
	tables := testsupport.SQLiteTables(t, path)
	if len(tables) != 1 || tables[0] != "notes" {
		t.Fatalf("check must not create tables, got %v", tables)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil, got %v", results)
	}
}

func TestRunAll_CSVConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCorpus(testsupport.SampleMovies...))

	results := RunAll(context.Background(), cfg)
	if len(results) != 2 {
		t.Fatalf("expected corpus and import checks, got %+v", results)
	}
	if !results[0].Passed {
		t.Fatalf("expected corpus file check to pass: %s", results[0].Detail)
	}
	// data/ is created lazily on first import.
	if results[1].Passed {
		t.Fatalf("expected import directory check to fail before import: %+v", results[1])
	}
	if !Failed(results) {
		t.Fatal("expected Failed to report the missing directory")
	}
}

func TestRunAll_IncludesLogDirWhenSet(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCorpus(testsupport.SampleMovies...))
	cfg.Corpus.Format = config.FormatSQLite
	cfg.Corpus.Path = ""
	cfg.Logging.Dir = t.TempDir()

	results := RunAll(context.Background(), cfg)
	if len(results) != 2 {
		t.Fatalf("expected database and log checks, got %+v", results)
	}
	if results[0].Name != "Corpus database" || results[0].Passed {
		t.Fatalf("expected failing database check, got %+v", results[0])
	}
	if results[1].Name != "Log directory" || !results[1].Passed {
		t.Fatalf("expected passing log dir check, got %+v", results[1])
	}
}
