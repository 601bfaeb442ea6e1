package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"movierec/internal/titles"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var k int
	var match string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Recommend for every title listed in a file or stdin",
		Long: `Read one title per line and print recommendations for each. Lines may be
numbered or bold list entries such as "1. **Heat (1995)** - reason"; blank
lines and placeholders are skipped. Titles missing from the corpus are
reported without stopping the batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("k") && k < 1 {
				return fmt.Errorf("-k must be positive, got %d", k)
			}
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open batch file: %w", err)
				}
				defer file.Close()
				in = file
			}
			queries, err := readQueries(in)
			if err != nil {
				return err
			}

			idx, cfg, err := ctx.buildIndex(cmd.Context(), match)
			if err != nil {
				return err
			}
			items, err := idx.RecommendBatch(cmd.Context(), queries, resolveK(cfg, k))
			if err != nil {
				return err
			}

			views := make([]resultView, 0, len(items))
			for _, item := range items {
				if item.NotFound {
					views = append(views, notFoundView(item.Query))
					continue
				}
				views = append(views, newResultView(item.Query, item.Result))
			}
			if jsonOutput {
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, view := range views {
				if !view.Found {
					fmt.Fprintln(out, renderStatusLine(view.Query, statusWarn, "movie not found", colorize))
					continue
				}
				fmt.Fprintln(out, renderStatusLine(view.Query, statusOK, view.Movie.Title, colorize))
				for _, rec := range view.Recommendations {
					fmt.Fprintf(out, "%s%s%d. %s (%s)\n", statusIndent, statusIndent, rec.Rank, rec.Title, formatScore(rec.Score))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 0, "Number of recommendations per title (default recommend.default_k)")
	cmd.Flags().StringVar(&match, "match", "", "Fuzzy match mode: substring or token")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// readQueries extracts titles from list-style lines. A year is kept as
// "Title (Year)" so the verbatim lookup can tell remakes apart before
// normalization folds them together.
func readQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		title, year, ok := titles.ParseListLine(scanner.Text())
		if !ok {
			continue
		}
		query := strings.TrimSpace(title)
		if year != 0 {
			query = fmt.Sprintf("%s (%d)", query, year)
		}
		queries = append(queries, query)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read titles: %w", err)
	}
	return queries, nil
}
