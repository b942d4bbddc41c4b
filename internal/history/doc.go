// Package history persists apply runs and their per-track changes in a
// SQLite database under the data directory. Each run records when it ran,
// which library it scanned, whether it was a dry run, and the genre field
// before and after every rewritten track.
//
// The schema is created on first open and verified against schemaVersion
// afterwards. To change the schema, update schema.sql and bump
// schemaVersion.
package history
