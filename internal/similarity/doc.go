// Package similarity precomputes pairwise cosine similarity over normalized
// vectors and ranks nearest neighbors.
package similarity
