package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"movierec/internal/config"
)

func TestCorpusStatsJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"corpus", "stats", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("corpus stats: %v", err)
	}
	var stats map[string]any
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if stats["records"].(float64) != 3 {
		t.Fatalf("expected 3 records, got %v", stats["records"])
	}
	if stats["vocabulary"].(float64) != 6 {
		t.Fatalf("expected 6 genre terms, got %v", stats["vocabulary"])
	}
	if stats["format"] != config.FormatCSV {
		t.Fatalf("unexpected format %v", stats["format"])
	}
}

func TestCorpusImportThenRecommendFromSQLite(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"corpus", "import"}, env.configPath)
	if err != nil {
		t.Fatalf("corpus import: %v", err)
	}
	requireContains(t, out, "Imported 3 movies")
	if _, err := os.Stat(env.cfg.Corpus.DatabasePath); err != nil {
		t.Fatalf("expected database at %s: %v", env.cfg.Corpus.DatabasePath, err)
	}

	sqliteCfg := *env.cfg
	sqliteCfg.Corpus.Format = config.FormatSQLite
	sqliteCfg.Corpus.Path = ""
	sqliteConfigPath := filepath.Join(env.baseDir, "sqlite.toml")
	writeTestConfig(t, sqliteConfigPath, &sqliteCfg)

	out, _, err = runCLI(t, []string{"recommend", "jumanji", "--json", "-k", "1"}, sqliteConfigPath)
	if err != nil {
		t.Fatalf("recommend from sqlite: %v", err)
	}
	var view resultView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if view.Movie == nil || view.Movie.Title != "Jumanji" || len(view.Recommendations) != 1 {
		t.Fatalf("unexpected result: %+v", view)
	}
	if view.Recommendations[0].Title != "Toy Story" {
		t.Fatalf("expected Toy Story, got %q", view.Recommendations[0].Title)
	}
}

func TestCorpusStatsMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Corpus.Path); err != nil {
		t.Fatalf("remove corpus: %v", err)
	}

	_, _, err := runCLI(t, []string{"corpus", "stats"}, env.configPath)
	if err == nil {
		t.Fatal("expected load error")
	}
}
