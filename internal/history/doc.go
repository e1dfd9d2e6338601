// Package history records translation runs in a local SQLite database.
//
// Each run stores the input and output paths, the deck statistics of the
// translated rule deck, and the number of diagnostics the parser emitted.
// Writes are idempotent on the run ID, so re-recording the same run is
// harmless.
//
// The database is opened with WAL journaling and a single write connection,
// which is enough for a CLI tool that records one run per invocation.
package history
