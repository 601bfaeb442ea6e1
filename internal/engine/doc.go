// Package engine builds the immutable recommendation Index and serves
// queries against it.
//
// Build runs the one-time pipeline: load the corpus, fit TF-IDF vectors over
// genre tags, and precompute the cosine-similarity matrix. The resulting
// Index is read-only, so any number of goroutines may call Recommend on it
// concurrently. Query results are copies; callers never hold references into
// the Index.
//
// Recommend reports unresolvable titles with an error matching
// ErrTitleNotFound. RecommendBatch never aborts on a missing title; it flags
// the item and moves on. Each batch item gets a request ID that tags its log
// lines as correlation_id.
package engine
