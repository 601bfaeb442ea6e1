package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"movierec/internal/config"
	"movierec/internal/corpus"
	"movierec/internal/engine"
	"movierec/internal/logging"
	"movierec/internal/titles"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) corpusSource(cfg *config.Config, logger *slog.Logger) corpus.Source {
	opts := corpus.Options{GenreDelimiter: cfg.Corpus.GenreDelimiter, Logger: logger}
	if cfg.Corpus.Format == config.FormatSQLite {
		return corpus.SQLiteSource{Path: cfg.CorpusSourcePath(), Options: opts}
	}
	return corpus.CSVSource{Path: cfg.CorpusSourcePath(), Options: opts}
}

// buildIndex loads the configured corpus. matchOverride replaces
// recommend.match_mode when non-empty.
func (c *commandContext) buildIndex(ctx context.Context, matchOverride string) (*engine.Index, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}

	modeValue := cfg.Recommend.MatchMode
	if strings.TrimSpace(matchOverride) != "" {
		modeValue = matchOverride
	}
	mode, ok := titles.ParseMode(modeValue)
	if !ok {
		return nil, nil, fmt.Errorf("unknown match mode %q (use %q or %q)", modeValue, titles.ModeSubstring, titles.ModeToken)
	}

	idx, err := engine.Build(ctx, c.corpusSource(cfg, logger), engine.Options{
		ExtraStopWords: cfg.Recommend.ExtraStopWords,
		MatchMode:      mode,
		Logger:         logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return idx, cfg, nil
}

func resolveK(cfg *config.Config, flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.Recommend.DefaultK
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
