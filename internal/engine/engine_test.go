package engine_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"movierec/internal/corpus"
	"movierec/internal/engine"
	"movierec/internal/logging"
	"movierec/internal/testsupport"
	"movierec/internal/titles"
)

func sampleIndex(t *testing.T, rows ...testsupport.Movie) *engine.Index {
	t.Helper()
	if len(rows) == 0 {
		rows = testsupport.SampleMovies
	}
	idx, err := engine.FromRecords(context.Background(), testsupport.Records(rows...), engine.Options{})
	if err != nil {
		t.Fatalf("FromRecords returned error: %v", err)
	}
	return idx
}

func TestRecommendEndToEnd(t *testing.T) {
	idx := sampleIndex(t)

	res, err := idx.Recommend("Toy Story", 2)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	want := []string{"Jumanji", "Grumpier Old Men"}
	if got := res.Titles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Recommend = %v, want %v", got, want)
	}
	if res.Resolution.Kind != titles.MatchVerbatim {
		t.Fatalf("expected verbatim match, got %s", res.Resolution.Kind)
	}
	if res.Recommendations[0].Score <= res.Recommendations[1].Score {
		t.Fatalf("expected Jumanji to outscore Grumpier Old Men: %+v", res.Recommendations)
	}
}

func TestBuildFromCSVSource(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCorpus(testsupport.SampleMovies...))

	idx, err := engine.Build(context.Background(), corpus.CSVSource{Path: cfg.Corpus.Path}, engine.Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if idx.Len() != 3 || idx.BuildID() == "" {
		t.Fatalf("unexpected index: len=%d build=%q", idx.Len(), idx.BuildID())
	}
	stats := idx.Stats()
	if stats.Vocabulary != 6 || stats.ZeroVectors != 0 || stats.MatchMode != titles.ModeSubstring {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestBuildFailsOnMissingCorpus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	idx, err := engine.Build(context.Background(), corpus.CSVSource{Path: cfg.Corpus.Path}, engine.Options{})
	if idx != nil {
		t.Fatal("expected no index on failure")
	}
	if !errors.Is(err, corpus.ErrCorpusLoad) {
		t.Fatalf("expected ErrCorpusLoad, got %v", err)
	}
}

func TestRecommendNeverReturnsSelfAndRespectsK(t *testing.T) {
	idx := sampleIndex(t)
	for _, k := range []int{1, 2, 5, 100} {
		res, err := idx.Recommend("Jumanji", k)
		if err != nil {
			t.Fatalf("Recommend(k=%d): %v", k, err)
		}
		want := k
		if want > idx.Len()-1 {
			want = idx.Len() - 1
		}
		if len(res.Recommendations) != want {
			t.Fatalf("k=%d: expected %d results, got %d", k, want, len(res.Recommendations))
		}
		for _, rec := range res.Recommendations {
			if rec.Title == "Jumanji" {
				t.Fatalf("k=%d: result includes query title", k)
			}
		}
	}
}

func TestRecommendRejectsNonPositiveK(t *testing.T) {
	idx := sampleIndex(t)
	if _, err := idx.Recommend("Jumanji", 0); !errors.Is(err, engine.ErrInvalidK) {
		t.Fatalf("expected ErrInvalidK, got %v", err)
	}
}

func TestRecommendTieBreaksByCorpusOrder(t *testing.T) {
	idx := sampleIndex(t,
		testsupport.Movie{Title: "Query", Genres: "Western"},
		testsupport.Movie{Title: "B", Genres: "Horror"},
		testsupport.Movie{Title: "C", Genres: "Western"},
		testsupport.Movie{Title: "D", Genres: "Musical"},
		testsupport.Movie{Title: "E", Genres: "Western"},
	)
	res, err := idx.Recommend("Query", 4)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := res.Titles(); !reflect.DeepEqual(got, []string{"C", "E", "B", "D"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestResolveVariants(t *testing.T) {
	idx := sampleIndex(t,
		testsupport.Movie{Title: "Toy Story (1995)", Genres: "Animation|Comedy"},
		testsupport.Movie{Title: "Grumpier Old Men (1995)", Genres: "Comedy|Romance"},
	)

	cases := []struct {
		query string
		want  string
		kind  titles.MatchKind
	}{
		{"Toy Story (1995)", "Toy Story (1995)", titles.MatchVerbatim},
		{"  TOY story ", "Toy Story (1995)", titles.MatchNormalized},
		{"old men", "Grumpier Old Men (1995)", titles.MatchSubstring},
	}
	for _, tc := range cases {
		res, err := idx.Resolve(tc.query)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.query, err)
		}
		if res.Movie.Title != tc.want || res.Kind != tc.kind {
			t.Fatalf("Resolve(%q) = %q/%s, want %q/%s", tc.query, res.Movie.Title, res.Kind, tc.want, tc.kind)
		}
		if res.Movie.Year != 1995 {
			t.Fatalf("expected year 1995, got %d", res.Movie.Year)
		}
	}

	_, err := idx.Resolve("The Matrix")
	if !errors.Is(err, engine.ErrTitleNotFound) {
		t.Fatalf("expected ErrTitleNotFound, got %v", err)
	}
	var nf *engine.NotFoundError
	if !errors.As(err, &nf) || nf.Query != "The Matrix" {
		t.Fatalf("expected NotFoundError for query, got %v", err)
	}
}

func TestRecommendBatchFlagsMissingTitles(t *testing.T) {
	idx := sampleIndex(t)
	items, err := idx.RecommendBatch(context.Background(), []string{"Toy Story", "Unknown Film", "Jumanji"}, 1)
	if err != nil {
		t.Fatalf("RecommendBatch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].NotFound || items[2].NotFound {
		t.Fatalf("unexpected not-found flags: %+v", items)
	}
	if !items[1].NotFound || len(items[1].Result.Recommendations) != 0 {
		t.Fatalf("expected empty not-found result, got %+v", items[1])
	}
	if got := items[2].Result.Titles(); !reflect.DeepEqual(got, []string{"Toy Story"}) {
		t.Fatalf("unexpected batch result %v", got)
	}
}

func TestRecommendBatchTagsEachQueryWithRequestID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "engine.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	idx, err := engine.FromRecords(context.Background(), testsupport.Records(testsupport.SampleMovies...), engine.Options{Logger: logger})
	if err != nil {
		t.Fatalf("FromRecords returned error: %v", err)
	}

	items, err := idx.RecommendBatch(context.Background(), []string{"Toy Story", "Unknown Film"}, 1)
	if err != nil {
		t.Fatalf("RecommendBatch: %v", err)
	}
	if items[0].RequestID == "" || items[1].RequestID == "" || items[0].RequestID == items[1].RequestID {
		t.Fatalf("expected distinct request IDs, got %q and %q", items[0].RequestID, items[1].RequestID)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	byQuery := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		query, _ := entry["query"].(string)
		id, _ := entry["correlation_id"].(string)
		if query != "" && id != "" {
			byQuery[query] = id
		}
	}
	for _, item := range items {
		if byQuery[item.Query] != item.RequestID {
			t.Fatalf("log for %q carries correlation_id %q, want %q", item.Query, byQuery[item.Query], item.RequestID)
		}
	}
}

func TestRecommendBatchStopsOnCanceledContext(t *testing.T) {
	idx := sampleIndex(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := idx.RecommendBatch(ctx, []string{"Toy Story"}, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestZeroGenreMovieIsMaximallyDissimilar(t *testing.T) {
	idx := sampleIndex(t,
		testsupport.Movie{Title: "Blank", Genres: ""},
		testsupport.Movie{Title: "Heat", Genres: "Crime"},
	)
	if got := idx.Similarity(0, 0); got != 0 {
		t.Fatalf("expected zero self-similarity for empty vector, got %v", got)
	}
	if got := idx.Similarity(1, 1); got != 1 {
		t.Fatalf("expected unit self-similarity, got %v", got)
	}
	res, err := idx.Recommend("Blank", 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Score != 0 {
		t.Fatalf("unexpected result %+v", res.Recommendations)
	}
	if idx.Stats().ZeroVectors != 1 {
		t.Fatalf("expected one zero vector, got %+v", idx.Stats())
	}
}

func TestResultsAreCopies(t *testing.T) {
	idx := sampleIndex(t)
	res, err := idx.Recommend("Toy Story", 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	res.Recommendations[0].Genres[0] = "mutated"
	again, _ := idx.Recommend("Toy Story", 1)
	if again.Recommendations[0].Genres[0] == "mutated" {
		t.Fatal("caller mutation leaked into index")
	}
}

func TestConcurrentQueries(t *testing.T) {
	idx := sampleIndex(t)
	want, err := idx.Recommend("Toy Story", 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := idx.Recommend("toy story", 2)
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(got.Titles(), want.Titles()) {
				errs <- errors.New("concurrent result mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestRebuildIsDeterministic(t *testing.T) {
	a := sampleIndex(t)
	b := sampleIndex(t)
	for i := 0; i < a.Len(); i++ {
		for j := 0; j < a.Len(); j++ {
			if a.Similarity(i, j) != b.Similarity(i, j) {
				t.Fatalf("similarity differs at (%d,%d)", i, j)
			}
		}
	}
	if a.BuildID() == b.BuildID() {
		t.Fatal("expected distinct build IDs")
	}
}
