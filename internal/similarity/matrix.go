package similarity

import (
	"slices"

	"movierec/internal/vectorize"
)

// Matrix is a symmetric cosine-similarity matrix stored as its packed upper
// triangle. Entries lie in [0,1]; the diagonal is 1 except for zero vectors,
// which are 0 everywhere.
type Matrix struct {
	n    int
	data []float64
}

// Neighbor is one ranked result.
type Neighbor struct {
	Index int
	Score float64
}

// Build computes every pair i<=j once from L2-normalized vectors.
func Build(vectors []vectorize.Vector) *Matrix {
	n := len(vectors)
	m := &Matrix{n: n, data: make([]float64, n*(n+1)/2)}
	for i := 0; i < n; i++ {
		row := m.offset(i)
		if !vectors[i].IsZero() {
			m.data[row] = 1
		}
		for j := i + 1; j < n; j++ {
			m.data[row+j-i] = clamp(vectors[i].Dot(vectors[j]))
		}
	}
	return m
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func (m *Matrix) offset(i int) int {
	return i*m.n - i*(i-1)/2
}

// Size reports the matrix dimension.
func (m *Matrix) Size() int {
	return m.n
}

// At returns sim[i][j].
func (m *Matrix) At(i, j int) float64 {
	if i > j {
		i, j = j, i
	}
	return m.data[m.offset(i)+j-i]
}

// Neighbors returns up to k other indices ordered by descending score, ties
// broken by ascending index. i itself is never included.
func (m *Matrix) Neighbors(i, k int) []Neighbor {
	if k <= 0 || i < 0 || i >= m.n {
		return nil
	}
	candidates := make([]Neighbor, 0, m.n-1)
	for j := 0; j < m.n; j++ {
		if j == i {
			continue
		}
		candidates = append(candidates, Neighbor{Index: j, Score: m.At(i, j)})
	}
	slices.SortFunc(candidates, func(a, b Neighbor) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return a.Index - b.Index
		}
	})
	if k < len(candidates) {
		candidates = candidates[:k]
	}
	return candidates
}
