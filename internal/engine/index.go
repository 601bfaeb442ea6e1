package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"movierec/internal/corpus"
	"movierec/internal/logging"
	"movierec/internal/similarity"
	"movierec/internal/titles"
	"movierec/internal/vectorize"
)

// DefaultK is the result count used when callers have no preference.
const DefaultK = 5

// Options configures an index build.
type Options struct {
	ExtraStopWords []string
	MatchMode      titles.Mode
	Logger         *slog.Logger
}

// Index is the immutable bundle of corpus, vocabulary, vectors, similarity
// matrix, and title lookup produced by Build.
type Index struct {
	buildID  string
	builtAt  time.Time
	duration time.Duration
	mode     titles.Mode
	logger   *slog.Logger

	records []corpus.Record
	model   *vectorize.Model
	matrix  *similarity.Matrix
	titles  *titles.Index
}

// Build loads src and constructs an Index. No partially built index is ever
// returned: any load failure aborts the build.
func Build(ctx context.Context, src corpus.Source, opts Options) (*Index, error) {
	buildID := uuid.NewString()
	ctx = logging.WithBuildID(ctx, buildID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "engine"))

	start := time.Now()
	records, err := src.Load(ctx)
	if err != nil {
		logging.ErrorWithContext(logger, "corpus load failed", "corpus_load_failed",
			logging.String("source", src.Describe()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check corpus.path and corpus.format"),
		)
		return nil, fmt.Errorf("build index: %w", err)
	}
	logger.Info("corpus loaded",
		logging.String("source", src.Describe()),
		logging.Int("records", len(records)),
		logging.Duration("duration", time.Since(start)),
	)
	return fromRecords(ctx, buildID, start, records, opts, logger)
}

// FromRecords builds an Index directly from in-memory records. Record
// positions are reassigned to match slice order.
func FromRecords(ctx context.Context, records []corpus.Record, opts Options) (*Index, error) {
	buildID := uuid.NewString()
	ctx = logging.WithBuildID(ctx, buildID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "engine"))
	return fromRecords(ctx, buildID, time.Now(), records, opts, logger)
}

func fromRecords(ctx context.Context, buildID string, start time.Time, records []corpus.Record, opts Options, logger *slog.Logger) (*Index, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("build index: %w", &corpus.LoadError{Source: "records", Reason: "corpus contains no usable records"})
	}
	mode := opts.MatchMode
	if mode == "" {
		mode = titles.ModeSubstring
	}

	owned := make([]corpus.Record, len(records))
	docs := make([]string, len(records))
	names := make([]string, len(records))
	for i, rec := range records {
		rec.Index = i
		rec.Genres = append([]string(nil), rec.Genres...)
		owned[i] = rec
		docs[i] = rec.GenreText()
		names[i] = rec.Title
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := vectorize.Fit(docs, vectorize.Options{ExtraStopWords: opts.ExtraStopWords})
	logger.Debug("vectors fitted", logging.Int("vocabulary", len(model.Vocabulary())))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matrix := similarity.Build(model.Vectors())

	idx := &Index{
		buildID:  buildID,
		builtAt:  time.Now().UTC(),
		duration: time.Since(start),
		mode:     mode,
		logger:   logger,
		records:  owned,
		model:    model,
		matrix:   matrix,
		titles:   titles.NewIndex(names),
	}
	logger.Info("index built",
		logging.Int("records", len(owned)),
		logging.Int("vocabulary", len(model.Vocabulary())),
		logging.String("match_mode", string(mode)),
		logging.Duration("duration", idx.duration),
	)
	return idx, nil
}

// BuildID identifies this build in logs.
func (ix *Index) BuildID() string {
	return ix.buildID
}

// Len reports the corpus size.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Movie returns a copy of the record at position i.
func (ix *Index) Movie(i int) (corpus.Record, bool) {
	if i < 0 || i >= len(ix.records) {
		return corpus.Record{}, false
	}
	return copyRecord(ix.records[i]), true
}

// Similarity returns the cosine similarity between positions i and j.
func (ix *Index) Similarity(i, j int) float64 {
	return ix.matrix.At(i, j)
}

func copyRecord(rec corpus.Record) corpus.Record {
	rec.Genres = append([]string(nil), rec.Genres...)
	return rec
}
