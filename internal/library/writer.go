package library

import (
	"strings"

	"go.senan.xyz/taglib"
)

// TagWriter persists the genre tags of one audio file.
type TagWriter interface {
	WriteGenres(path string, genres []string) error
}

// NewTagWriter returns a writer that rewrites the genre tag on disk while
// leaving every other tag intact.
func NewTagWriter() TagWriter { return fileWriter{} }

type fileWriter struct{}

func (fileWriter) WriteGenres(path string, genres []string) error {
	tags, err := taglib.ReadTags(path)
	if err != nil {
		return err
	}
	// Formats differ on the key casing they report, so clear every
	// genre-shaped key before writing the canonical one.
	for key := range tags {
		if strings.EqualFold(key, "genre") || strings.EqualFold(key, "genres") {
			delete(tags, key)
		}
	}
	if len(genres) > 0 {
		tags["GENRE"] = append([]string(nil), genres...)
	}
	return taglib.WriteTags(path, tags)
}
