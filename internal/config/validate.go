package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCorpus() error {
	switch c.Corpus.Format {
	case FormatCSV, FormatSQLite:
	default:
		return fmt.Errorf("corpus.format must be %q or %q, got %q", FormatCSV, FormatSQLite, c.Corpus.Format)
	}
	if c.Corpus.GenreDelimiter == "" {
		return errors.New("corpus.genre_delimiter must be set")
	}
	if c.Corpus.DatabasePath == "" {
		return errors.New("corpus.database_path must be set")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultK < 1 {
		return errors.New("recommend.default_k must be positive")
	}
	switch c.Recommend.MatchMode {
	case MatchSubstring, MatchToken:
	default:
		return fmt.Errorf("recommend.match_mode must be %q or %q, got %q", MatchSubstring, MatchToken, c.Recommend.MatchMode)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
