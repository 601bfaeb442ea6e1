package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Movie is one fixture row.
type Movie struct {
	Title  string
	Genres string
}

// SampleMovies is the three-movie corpus used across package tests.
var SampleMovies = []Movie{
	{Title: "Toy Story", Genres: "Animation|Comedy|Family"},
	{Title: "Jumanji", Genres: "Adventure|Fantasy|Family"},
	{Title: "Grumpier Old Men", Genres: "Comedy|Romance"},
}

// WriteCorpusCSV writes a MovieLens-style movieId,title,genres file.
func WriteCorpusCSV(t testing.TB, path string, rows ...Movie) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"movieId", "title", "genres"}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		if err := w.Write([]string{strconv.Itoa(i + 1), row.Title, row.Genres}); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
}

// WriteFile writes raw content, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
