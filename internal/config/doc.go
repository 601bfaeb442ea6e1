// Package config loads, normalizes, and validates movierec configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MOVIEREC_CORPUS_PATH. The Config type centralizes every knob the CLI and the
// recommendation engine need so the corpus location, match policy, and log
// settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
