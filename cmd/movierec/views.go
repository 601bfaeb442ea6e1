package main

import (
	"strconv"
	"strings"

	"movierec/internal/engine"
)

type movieView struct {
	Title  string   `json:"title"`
	Year   int      `json:"year,omitempty"`
	Genres []string `json:"genres"`
}

type recommendationView struct {
	Rank   int      `json:"rank"`
	Title  string   `json:"title"`
	Year   int      `json:"year,omitempty"`
	Score  float64  `json:"score"`
	Genres []string `json:"genres"`
}

type resultView struct {
	Query           string               `json:"query"`
	Found           bool                 `json:"found"`
	Match           string               `json:"match,omitempty"`
	Movie           *movieView           `json:"movie,omitempty"`
	Recommendations []recommendationView `json:"recommendations"`
}

func newResultView(query string, res engine.Result) resultView {
	movie := res.Resolution.Movie
	view := resultView{
		Query: query,
		Found: true,
		Match: string(res.Resolution.Kind),
		Movie: &movieView{
			Title:  movie.Title,
			Year:   movie.Year,
			Genres: nonNil(movie.Genres),
		},
		Recommendations: make([]recommendationView, 0, len(res.Recommendations)),
	}
	for i, rec := range res.Recommendations {
		view.Recommendations = append(view.Recommendations, recommendationView{
			Rank:   i + 1,
			Title:  rec.Title,
			Year:   rec.Year,
			Score:  rec.Score,
			Genres: nonNil(rec.Genres),
		})
	}
	return view
}

func notFoundView(query string) resultView {
	return resultView{Query: query, Recommendations: []recommendationView{}}
}

func recommendationRows(recs []recommendationView) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			strconv.Itoa(rec.Rank),
			rec.Title,
			formatScore(rec.Score),
			strings.Join(rec.Genres, ", "),
		})
	}
	return rows
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
