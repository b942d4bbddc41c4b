// Package logging builds the application's slog loggers: a single-line
// console handler for interactive use, a JSON handler for machine
// consumption, optional log-file teeing, and small attribute helpers
// shared by the rest of the codebase.
package logging
