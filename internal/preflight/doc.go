// Package preflight provides readiness checks for the filesystem paths and
// corpus sources movierec depends on.
//
// The CLI "movierec status" command runs RunAll and renders one line per
// Result. Checks for optional outputs (the log directory, the SQLite import
// target) are skipped when the corresponding setting is empty.
package preflight
