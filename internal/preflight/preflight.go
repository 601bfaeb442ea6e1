package preflight

import (
	"context"
	"path/filepath"

	"movierec/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	source := cfg.CorpusSourcePath()
	if cfg.Corpus.Format == config.FormatSQLite {
		results = append(results, CheckCorpusDatabase(ctx, "Corpus database", source))
	} else {
		results = append(results, CheckFileReadable("Corpus file", source))
	}

	// The import target only matters when it differs from the active source.
	if cfg.Corpus.DatabasePath != "" && cfg.Corpus.DatabasePath != source {
		results = append(results, CheckDirectoryAccess("Import directory", filepath.Dir(cfg.Corpus.DatabasePath)))
	}

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
