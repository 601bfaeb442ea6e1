package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"movierec/internal/config"
	"movierec/internal/corpus"
)

func newCorpusCommand(ctx *commandContext) *cobra.Command {
	corpusCmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect and import the movie corpus",
	}
	corpusCmd.AddCommand(newCorpusStatsCommand(ctx))
	corpusCmd.AddCommand(newCorpusImportCommand(ctx))
	return corpusCmd
}

func newCorpusStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Build the index and report corpus figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, cfg, err := ctx.buildIndex(cmd.Context(), "")
			if err != nil {
				return err
			}
			stats := idx.Stats()
			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"build_id":         stats.BuildID,
					"source":           cfg.CorpusSourcePath(),
					"format":           cfg.Corpus.Format,
					"records":          stats.Records,
					"vocabulary":       stats.Vocabulary,
					"zero_vectors":     stats.ZeroVectors,
					"duplicate_titles": stats.DuplicateTitle,
					"match_mode":       string(stats.MatchMode),
					"build_ms":         stats.BuildDuration.Milliseconds(),
				})
			}
			rows := [][]string{
				{"Source", cfg.Corpus.Format + ":" + cfg.CorpusSourcePath()},
				{"Records", strconv.Itoa(stats.Records)},
				{"Vocabulary", strconv.Itoa(stats.Vocabulary)},
				{"Movies without genres", strconv.Itoa(stats.ZeroVectors)},
				{"Duplicate titles", strconv.Itoa(stats.DuplicateTitle)},
				{"Match mode", string(stats.MatchMode)},
				{"Build time", stats.BuildDuration.String()},
				{"Build ID", stats.BuildID},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCorpusImportCommand(ctx *commandContext) *cobra.Command {
	var dbFlag string

	cmd := &cobra.Command{
		Use:   "import [csv]",
		Short: "Import a CSV dataset into the SQLite corpus database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			csvPath := cfg.Corpus.Path
			if len(args) == 1 {
				if csvPath, err = config.ExpandPath(args[0]); err != nil {
					return fmt.Errorf("resolve csv path: %w", err)
				}
			}
			dbPath := cfg.Corpus.DatabasePath
			if dbFlag != "" {
				if dbPath, err = config.ExpandPath(dbFlag); err != nil {
					return fmt.Errorf("resolve database path: %w", err)
				}
			}

			src := corpus.CSVSource{
				Path:    csvPath,
				Options: corpus.Options{GenreDelimiter: cfg.Corpus.GenreDelimiter, Logger: logger},
			}
			result, err := corpus.Import(cmd.Context(), src, dbPath, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies into %s\n", result.Records, result.DatabasePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbFlag, "db", "", "Target database (default corpus.database_path)")
	return cmd
}
