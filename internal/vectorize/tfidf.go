package vectorize

import (
	"math"
	"sort"
)

// Options configures fitting.
type Options struct {
	ExtraStopWords []string
}

// Vector is a sparse L2-normalized weight vector. Terms are ascending term ids.
type Vector struct {
	Terms   []int
	Weights []float64
}

// IsZero reports whether the vector has no weighted terms.
func (v Vector) IsZero() bool {
	return len(v.Terms) == 0
}

// Dot returns the inner product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Terms) && j < len(o.Terms) {
		switch {
		case v.Terms[i] == o.Terms[j]:
			sum += v.Weights[i] * o.Weights[j]
			i++
			j++
		case v.Terms[i] < o.Terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Model holds the fitted vocabulary, IDF weights, and one vector per document.
type Model struct {
	vocab   []string
	termID  map[string]int
	idf     []float64
	vectors []Vector
}

// Fit computes smoothed TF-IDF vectors for docs:
// idf(t) = ln((1+N)/(1+df(t))) + 1, tf is the raw count, and each vector is
// L2-normalized. Documents without terms get a zero vector.
func Fit(docs []string, opts Options) *Model {
	tok := NewTokenizer(opts.ExtraStopWords)

	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := tok.Tokens(doc)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	m := &Model{
		vocab:   vocab,
		termID:  make(map[string]int, len(vocab)),
		idf:     make([]float64, len(vocab)),
		vectors: make([]Vector, len(docs)),
	}
	for id, term := range vocab {
		m.termID[term] = id
		m.idf[id] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for i, tokens := range tokenized {
		m.vectors[i] = m.weigh(tokens)
	}
	return m
}

func (m *Model) weigh(tokens []string) Vector {
	counts := make(map[int]int, len(tokens))
	for _, t := range tokens {
		if id, ok := m.termID[t]; ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}
	terms := make([]int, 0, len(counts))
	for id := range counts {
		terms = append(terms, id)
	}
	sort.Ints(terms)

	weights := make([]float64, len(terms))
	var norm float64
	for i, id := range terms {
		w := float64(counts[id]) * m.idf[id]
		weights[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return Vector{}
	}
	for i := range weights {
		weights[i] /= norm
	}
	return Vector{Terms: terms, Weights: weights}
}

// Vocabulary returns the sorted vocabulary.
func (m *Model) Vocabulary() []string {
	out := make([]string, len(m.vocab))
	copy(out, m.vocab)
	return out
}

// IDF returns the weight for term and whether it is in the vocabulary.
func (m *Model) IDF(term string) (float64, bool) {
	id, ok := m.termID[term]
	if !ok {
		return 0, false
	}
	return m.idf[id], true
}

// Vectors returns the fitted document vectors in input order.
func (m *Model) Vectors() []Vector {
	return m.vectors
}

// Len reports the number of fitted documents.
func (m *Model) Len() int {
	return len(m.vectors)
}
