package corpus

import (
	"context"
	"log/slog"
	"strings"

	"movierec/internal/logging"
	"movierec/internal/titles"
)

// DefaultGenreDelimiter separates genres inside the raw genres field.
const DefaultGenreDelimiter = "|"

// Record is one movie in the corpus.
type Record struct {
	Index  int
	Title  string
	Year   int
	Genres []string
}

// GenreText joins the genre tags with spaces so each genre is tokenized
// independently.
func (r Record) GenreText() string {
	return strings.Join(r.Genres, " ")
}

// Options controls how raw rows become records.
type Options struct {
	GenreDelimiter string
	Logger         *slog.Logger
}

func (o Options) delimiter() string {
	if o.GenreDelimiter == "" {
		return DefaultGenreDelimiter
	}
	return o.GenreDelimiter
}

func (o Options) logger() *slog.Logger {
	return logging.NewComponentLogger(o.Logger, "corpus")
}

// Source produces the ordered corpus.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
	Describe() string
}

// SplitGenres splits a raw genres field on delim, dropping blank entries.
// A missing field yields no genres.
func SplitGenres(raw, delim string) []string {
	if delim == "" {
		delim = DefaultGenreDelimiter
	}
	return cleanGenres(strings.Split(raw, delim))
}

func cleanGenres(parts []string) []string {
	genres := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			genres = append(genres, trimmed)
		}
	}
	return genres
}

// builder assigns positions as rows are accepted so skipped rows never leave gaps.
type builder struct {
	opts    Options
	logger  *slog.Logger
	source  string
	records []Record
	skipped int
}

func newBuilder(ctx context.Context, source string, opts Options) *builder {
	return &builder{
		opts:   opts,
		logger: logging.WithContext(ctx, opts.logger()),
		source: source,
	}
}

func (b *builder) add(row int, rawTitle, rawGenres string) {
	b.addGenres(row, rawTitle, SplitGenres(rawGenres, b.opts.delimiter()))
}

// addGenres accepts a row whose genres are already split.
func (b *builder) addGenres(row int, rawTitle string, genres []string) {
	rawTitle = strings.TrimSpace(rawTitle)
	if rawTitle == "" {
		b.skip(row, "missing title")
		return
	}
	_, year := titles.SplitYear(rawTitle)
	b.records = append(b.records, Record{
		Index:  len(b.records),
		Title:  rawTitle,
		Year:   year,
		Genres: cleanGenres(genres),
	})
}

func (b *builder) skip(row int, reason string) {
	b.skipped++
	logging.WarnWithContext(b.logger, "corpus row skipped", "corpus_row_skipped",
		logging.String("source", b.source),
		logging.Int("row", row),
		logging.String("reason", reason),
		logging.String(logging.FieldErrorHint, "fix the row in the dataset"),
		logging.String(logging.FieldImpact, "movie excluded from recommendations"),
	)
}

func (b *builder) finish() ([]Record, error) {
	if len(b.records) == 0 {
		return nil, newLoadError(b.source, "corpus contains no usable records", nil)
	}
	warnDuplicates(b.logger, b.records)
	b.logger.Debug("corpus rows accepted",
		logging.String("source", b.source),
		logging.Int("records", len(b.records)),
		logging.Int("skipped", b.skipped),
	)
	return b.records, nil
}

// warnDuplicates reports titles that appear more than once; lookups keep the
// last occurrence.
func warnDuplicates(logger *slog.Logger, records []Record) {
	for title, count := range DuplicateTitles(records) {
		logging.WarnWithContext(logger, "duplicate corpus title", "corpus_duplicate_title",
			logging.String("title", title),
			logging.Int("occurrences", count),
			logging.String(logging.FieldErrorHint, "deduplicate the dataset"),
			logging.String(logging.FieldImpact, "title lookups resolve to the last occurrence"),
		)
	}
}

// DuplicateTitles returns titles that occur more than once with their counts.
func DuplicateTitles(records []Record) map[string]int {
	counts := make(map[string]int, len(records))
	for _, rec := range records {
		counts[rec.Title]++
	}
	dups := make(map[string]int)
	for title, count := range counts {
		if count > 1 {
			dups[title] = count
		}
	}
	return dups
}
