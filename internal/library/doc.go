// Package library scans a music directory and models the tracks it finds.
// Track carries the mutable genre field processors rewrite; Scanner walks
// the configured directory, reads tags through a pluggable TagReader, and
// skips unreadable files with a warning. TagWriter persists rewritten
// genre tags back to the files.
package library
