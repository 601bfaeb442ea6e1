package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"movierec/internal/corpus"
	"movierec/internal/logging"
	"movierec/internal/titles"
)

// Resolution is a query mapped to a corpus movie.
type Resolution struct {
	Query string
	Movie corpus.Record
	Kind  titles.MatchKind
}

// Recommendation is one ranked similar movie.
type Recommendation struct {
	Title  string
	Year   int
	Genres []string
	Score  float64
	Index  int
}

// Result is the answer to one query.
type Result struct {
	Resolution      Resolution
	Recommendations []Recommendation
}

// Titles returns the recommended titles in rank order.
func (r Result) Titles() []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.Title
	}
	return out
}

// Resolve maps title to a corpus movie using the index's match mode.
func (ix *Index) Resolve(title string) (Resolution, error) {
	return ix.ResolveWith(title, ix.mode)
}

// ResolveWith is Resolve with an explicit match mode.
func (ix *Index) ResolveWith(title string, mode titles.Mode) (Resolution, error) {
	match, ok := ix.titles.Resolve(title, mode)
	if !ok {
		return Resolution{}, &NotFoundError{Query: title}
	}
	return Resolution{
		Query: title,
		Movie: copyRecord(ix.records[match.Index]),
		Kind:  match.Kind,
	}, nil
}

// Recommend returns up to k movies most similar to title, never including
// the resolved movie itself.
func (ix *Index) Recommend(title string, k int) (Result, error) {
	return ix.RecommendWith(title, k, ix.mode)
}

// RecommendWith is Recommend with an explicit match mode.
func (ix *Index) RecommendWith(title string, k int, mode titles.Mode) (Result, error) {
	return ix.recommend(title, k, mode, ix.logger)
}

func (ix *Index) recommend(title string, k int, mode titles.Mode, logger *slog.Logger) (Result, error) {
	if k < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	res, err := ix.ResolveWith(title, mode)
	if err != nil {
		logger.Debug("title not resolved", logging.String("query", title))
		return Result{}, err
	}

	neighbors := ix.matrix.Neighbors(res.Movie.Index, k)
	recs := make([]Recommendation, len(neighbors))
	for i, nb := range neighbors {
		rec := ix.records[nb.Index]
		recs[i] = Recommendation{
			Title:  rec.Title,
			Year:   rec.Year,
			Genres: append([]string(nil), rec.Genres...),
			Score:  nb.Score,
			Index:  nb.Index,
		}
	}
	logger.Debug("recommendations served",
		logging.String("query", title),
		logging.String("resolved", res.Movie.Title),
		logging.String("match", string(res.Kind)),
		logging.Int("results", len(recs)),
	)
	return Result{Resolution: res, Recommendations: recs}, nil
}

// BatchItem is the outcome for one query in a batch.
type BatchItem struct {
	Query     string
	RequestID string
	Result    Result
	NotFound  bool
}

// RecommendBatch answers every query in order. Unresolvable titles are
// flagged with NotFound instead of aborting the batch. Each item gets its own
// request ID, logged as the correlation ID of that query's log lines.
func (ix *Index) RecommendBatch(ctx context.Context, queries []string, k int) ([]BatchItem, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	items := make([]BatchItem, len(queries))
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := uuid.NewString()
		items[i].Query = q
		items[i].RequestID = id
		logger := logging.WithContext(logging.WithRequestID(ctx, id), ix.logger)
		res, err := ix.recommend(q, k, ix.mode, logger)
		if err != nil {
			items[i].NotFound = true
			continue
		}
		items[i].Result = res
	}
	return items, nil
}
