package host

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"genremap/internal/logging"
)

// LegacyFile exposes a 2.x settings file as the legacy namespace. The file
// is a flat TOML table of string values; removing a key rewrites the file
// without it.
type LegacyFile struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	logger *slog.Logger
}

// OpenLegacyFile reads the legacy settings at path. A missing file yields
// a nil *LegacyFile and no error.
func OpenLegacyFile(path string, logger *slog.Logger) (*LegacyFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read legacy settings: %w", err)
	}

	values := make(map[string]string)
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse legacy settings: %w", err)
	}
	return &LegacyFile{
		path:   path,
		values: values,
		logger: logging.NewComponentLogger(logger, "legacy"),
	}, nil
}

// RawValue returns the stored value for key and whether it exists.
func (l *LegacyFile) RawValue(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	value, ok := l.values[key]
	return value, ok
}

// Remove deletes key and rewrites the file.
func (l *LegacyFile) Remove(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.values[key]; !ok {
		return
	}
	delete(l.values, key)

	data, err := toml.Marshal(l.values)
	if err != nil {
		l.logger.Warn("unable to encode legacy settings", logging.String("key", key), logging.Error(err))
		return
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		l.logger.Warn("unable to rewrite legacy settings", logging.String("path", l.path), logging.Error(err))
	}
}
