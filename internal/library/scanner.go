package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/simonhull/audiometa"

	"genremap/internal/config"
	"genremap/internal/logging"
)

// TagReader extracts the title and genre tags from one audio file.
type TagReader interface {
	ReadTags(path string) (title string, genres []string, err error)
}

// fileReader reads tags straight from the file on disk.
type fileReader struct{}

func (fileReader) ReadTags(path string) (string, []string, error) {
	file, err := audiometa.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()
	return file.Tags.Title, append([]string(nil), file.Tags.Genres...), nil
}

// Scanner walks a music directory and reads track metadata for every file
// whose extension is configured for scanning. Files whose tags cannot be
// read are logged and skipped rather than failing the scan.
type Scanner struct {
	root       string
	extensions map[string]struct{}
	joiner     string
	reader     TagReader
	logger     *slog.Logger
}

// NewScanner builds a scanner over cfg's music directory using on-disk tag
// reading.
func NewScanner(cfg *config.Config, logger *slog.Logger) *Scanner {
	return NewScannerWithReader(cfg, fileReader{}, logger)
}

// NewScannerWithReader builds a scanner with a custom tag reader.
func NewScannerWithReader(cfg *config.Config, reader TagReader, logger *slog.Logger) *Scanner {
	extensions := make(map[string]struct{}, len(cfg.Library.Extensions))
	for _, ext := range cfg.Library.Extensions {
		extensions[ext] = struct{}{}
	}
	return &Scanner{
		root:       cfg.Library.MusicDir,
		extensions: extensions,
		joiner:     cfg.GenreSeparator(),
		reader:     reader,
		logger:     logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan walks the music directory and returns tracks in path order.
func (s *Scanner) Scan(ctx context.Context) ([]*Track, error) {
	var tracks []*Track
	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := s.extensions[ext]; !ok {
			return nil
		}

		title, genres, readErr := s.reader.ReadTags(path)
		if readErr != nil {
			s.logger.Warn("unable to read tags",
				logging.String("path", path),
				logging.Error(readErr))
			return nil
		}
		tracks = append(tracks, NewTrack(path, title, genres, s.joiner))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.root, err)
	}
	return tracks, nil
}
