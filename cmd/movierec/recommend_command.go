package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"movierec/internal/engine"
)

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var k int
	var match string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies with similar genres",
		Long: `Resolve a title against the corpus and list the most similar movies by
genre TF-IDF cosine similarity.

Examples:
  movierec recommend "Toy Story"
  movierec recommend "toy story" -k 10
  movierec recommend "story" --match token --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("k") && k < 1 {
				return fmt.Errorf("-k must be positive, got %d", k)
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			idx, cfg, err := ctx.buildIndex(cmd.Context(), match)
			if err != nil {
				return err
			}

			res, err := idx.Recommend(title, resolveK(cfg, k))
			out := cmd.OutOrStdout()
			if errors.Is(err, engine.ErrTitleNotFound) {
				if jsonOutput {
					if jerr := writeJSON(cmd, notFoundView(title)); jerr != nil {
						return jerr
					}
					return err
				}
				fmt.Fprintln(out, renderStatusLine("Movie", statusError, fmt.Sprintf("%q not found in dataset", title), shouldColorize(out)))
				return err
			}
			if err != nil {
				return err
			}

			view := newResultView(title, res)
			if jsonOutput {
				return writeJSON(cmd, view)
			}
			fmt.Fprintln(out, renderStatusLine("Movie", statusOK, fmt.Sprintf("%s (%s match)", view.Movie.Title, view.Match), shouldColorize(out)))
			if len(view.Recommendations) == 0 {
				fmt.Fprintln(out, "No other movies in the corpus")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Title", "Score", "Genres"},
				recommendationRows(view.Recommendations),
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 0, "Number of recommendations (default recommend.default_k)")
	cmd.Flags().StringVar(&match, "match", "", "Fuzzy match mode: substring or token (default recommend.match_mode)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
