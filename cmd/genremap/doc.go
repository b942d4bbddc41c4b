// Package main hosts the genremap CLI entrypoint and command graph.
//
// The Cobra-based command tree covers configuration scaffolding, rule
// inspection, genre previews, library apply runs, run history, and the
// config watch mode. It centralizes configuration resolution and logger
// setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
