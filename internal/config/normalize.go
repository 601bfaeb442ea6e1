package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeCorpus(); err != nil {
		return err
	}
	c.normalizeRecommend()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeCorpus() error {
	var err error
	c.Corpus.Path = strings.TrimSpace(c.Corpus.Path)
	if c.Corpus.Path == "" {
		if value, ok := os.LookupEnv("MOVIEREC_CORPUS_PATH"); ok {
			c.Corpus.Path = strings.TrimSpace(value)
		}
	}
	if c.Corpus.Path, err = expandPath(c.Corpus.Path); err != nil {
		return fmt.Errorf("corpus.path: %w", err)
	}
	if strings.TrimSpace(c.Corpus.DatabasePath) == "" {
		c.Corpus.DatabasePath = defaultDatabasePath
	}
	if c.Corpus.DatabasePath, err = expandPath(strings.TrimSpace(c.Corpus.DatabasePath)); err != nil {
		return fmt.Errorf("corpus.database_path: %w", err)
	}
	c.Corpus.Format = strings.ToLower(strings.TrimSpace(c.Corpus.Format))
	if c.Corpus.Format == "" {
		c.Corpus.Format = FormatCSV
	}
	// A single space is a legal delimiter, so only an empty value falls back.
	if c.Corpus.GenreDelimiter == "" {
		c.Corpus.GenreDelimiter = defaultGenreDelimiter
	}
	return nil
}

func (c *Config) normalizeRecommend() {
	c.Recommend.MatchMode = strings.ToLower(strings.TrimSpace(c.Recommend.MatchMode))
	if c.Recommend.MatchMode == "" {
		c.Recommend.MatchMode = MatchSubstring
	}
	if len(c.Recommend.ExtraStopWords) == 0 {
		return
	}
	words := make([]string, 0, len(c.Recommend.ExtraStopWords))
	seen := make(map[string]struct{}, len(c.Recommend.ExtraStopWords))
	for _, word := range c.Recommend.ExtraStopWords {
		normalized := strings.ToLower(strings.TrimSpace(word))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		words = append(words, normalized)
	}
	c.Recommend.ExtraStopWords = words
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
