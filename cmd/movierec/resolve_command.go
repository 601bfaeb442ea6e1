package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var match string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Show which corpus movie a title resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			idx, _, err := ctx.buildIndex(cmd.Context(), match)
			if err != nil {
				return err
			}
			res, err := idx.Resolve(title)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, struct {
					Query string    `json:"query"`
					Match string    `json:"match"`
					Index int       `json:"index"`
					Movie movieView `json:"movie"`
				}{
					Query: title,
					Match: string(res.Kind),
					Index: res.Movie.Index,
					Movie: movieView{Title: res.Movie.Title, Year: res.Movie.Year, Genres: nonNil(res.Movie.Genres)},
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:  %s\n", res.Movie.Title)
			if res.Movie.Year > 0 {
				fmt.Fprintf(out, "Year:   %d\n", res.Movie.Year)
			}
			fmt.Fprintf(out, "Genres: %s\n", strings.Join(res.Movie.Genres, ", "))
			fmt.Fprintf(out, "Match:  %s\n", res.Kind)
			fmt.Fprintf(out, "Index:  %d\n", res.Movie.Index)
			return nil
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "Fuzzy match mode: substring or token")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
