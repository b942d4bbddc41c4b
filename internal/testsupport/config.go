// Package testsupport provides shared helpers for tests: temp-dir backed
// configurations and history store setup.
package testsupport

import (
	"path/filepath"
	"testing"

	"genremap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Library.MusicDir = filepath.Join(base, "music")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithPairs sets the mapping pair text and enables mapping.
func WithPairs(pairs string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Mapping.Enabled = true
		cfg.Mapping.Pairs = pairs
	}
}

// WithSeparator overrides the genre separator on the test config.
func WithSeparator(sep string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tags.GenreSeparator = sep
	}
}
