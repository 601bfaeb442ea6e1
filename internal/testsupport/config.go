package testsupport

import (
	"path/filepath"
	"testing"

	"movierec/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Corpus.Path = filepath.Join(base, "movies.csv")
	cfgVal.Corpus.DatabasePath = filepath.Join(base, "data", "corpus.db")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCorpus writes rows as the CSV corpus referenced by the config.
func WithCorpus(rows ...Movie) ConfigOption {
	return func(b *configBuilder) {
		WriteCorpusCSV(b.t, b.cfg.Corpus.Path, rows...)
	}
}

// WithMatchMode overrides the configured title match mode.
func WithMatchMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recommend.MatchMode = mode
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Corpus.Path)
}
