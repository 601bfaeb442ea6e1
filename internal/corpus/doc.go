// Package corpus loads the movie dataset the recommendation engine indexes.
//
// A corpus is an ordered slice of Record values with stable positions
// 0..N-1 in source row order. Sources are either a CSV file with `title` and
// `genres` columns or a SQLite database written by Import. Rows without a
// title are skipped with a warning; unreadable sources and missing columns
// fail with an error matching ErrCorpusLoad.
package corpus
