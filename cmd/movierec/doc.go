// Package main hosts the movierec CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the
// recommendation index from the configured corpus, and renders query results
// as tables or JSON. Corpus maintenance (SQLite import, stats) and
// configuration scaffolding live here too.
//
// Keep this package lean: new behavior belongs in the internal packages and
// is surfaced through dedicated commands or flags here.
package main
