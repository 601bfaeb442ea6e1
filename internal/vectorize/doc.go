// Package vectorize turns genre tag text into L2-normalized TF-IDF vectors.
//
// The vocabulary and IDF weights are fitted once over the whole corpus and
// are immutable afterwards. Vectors are sparse and sorted by term id so dot
// products are deterministic.
package vectorize
