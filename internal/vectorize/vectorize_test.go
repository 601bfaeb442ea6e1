package vectorize_test

import (
	"math"
	"reflect"
	"testing"

	"movierec/internal/vectorize"
)

func TestTokenizerDropsStopWordsAndPunctuation(t *testing.T) {
	tok := vectorize.NewTokenizer([]string{" Film "})
	got := tok.Tokens("(no genres listed) Sci-Fi  FILM Comedy a")
	want := []string{"genres", "listed", "sci-fi", "comedy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
}

func TestFitSmoothedIDF(t *testing.T) {
	m := vectorize.Fit([]string{
		"Animation Comedy Family",
		"Adventure Fantasy Family",
		"Comedy Romance",
	}, vectorize.Options{})

	want := []string{"adventure", "animation", "comedy", "family", "fantasy", "romance"}
	if got := m.Vocabulary(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Vocabulary = %v, want %v", got, want)
	}

	idf, ok := m.IDF("family")
	if !ok {
		t.Fatal("expected family in vocabulary")
	}
	if wantIDF := math.Log(4.0/3.0) + 1; math.Abs(idf-wantIDF) > 1e-12 {
		t.Fatalf("idf(family) = %v, want %v", idf, wantIDF)
	}
	idf, _ = m.IDF("romance")
	if wantIDF := math.Log(4.0/2.0) + 1; math.Abs(idf-wantIDF) > 1e-12 {
		t.Fatalf("idf(romance) = %v, want %v", idf, wantIDF)
	}
	if _, ok := m.IDF("horror"); ok {
		t.Fatal("unexpected vocabulary term")
	}
}

func TestFitNormalizesVectors(t *testing.T) {
	m := vectorize.Fit([]string{"Drama Drama War", "Drama", ""}, vectorize.Options{})
	vecs := m.Vectors()
	for i, v := range vecs[:2] {
		if norm := v.Dot(v); math.Abs(norm-1) > 1e-12 {
			t.Fatalf("vector %d has squared norm %v", i, norm)
		}
	}
	if !vecs[2].IsZero() {
		t.Fatalf("expected zero vector for empty document, got %+v", vecs[2])
	}
	if d := vecs[2].Dot(vecs[0]); d != 0 {
		t.Fatalf("zero vector dot = %v", d)
	}
}

func TestFitIsDeterministic(t *testing.T) {
	docs := []string{"Action Thriller", "Comedy", "Action Comedy Crime", "Crime Drama Thriller"}
	a := vectorize.Fit(docs, vectorize.Options{})
	b := vectorize.Fit(docs, vectorize.Options{})
	if !reflect.DeepEqual(a.Vocabulary(), b.Vocabulary()) {
		t.Fatal("vocabulary differs between fits")
	}
	if !reflect.DeepEqual(a.Vectors(), b.Vectors()) {
		t.Fatal("vectors differ between fits")
	}
}
