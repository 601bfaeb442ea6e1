// Package titles normalizes movie titles and resolves free-form queries to
// corpus positions.
//
// Normalization case-folds, drops parenthetical content such as release
// years, and collapses whitespace so "toy story" and "Toy Story (1995)" compare
// equal. Index performs verbatim, normalized, and fuzzy lookups; the fuzzy
// step is either first-hit substring containment or best token overlap.
package titles
