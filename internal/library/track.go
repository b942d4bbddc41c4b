package library

import "strings"

// Track is the mutable metadata record for one audio file. It implements
// the track metadata surface handed to processors: Genre exposes the
// joined genre field, SetGenres writes it back as an ordered list.
type Track struct {
	path    string
	title   string
	genres  []string
	joiner  string
	updated bool
}

// NewTrack builds a track for the file at path. genres is the ordered
// list read from the tags and joiner is the separator used to render the
// joined genre field.
func NewTrack(path, title string, genres []string, joiner string) *Track {
	if joiner == "" {
		joiner = "; "
	}
	return &Track{
		path:   path,
		title:  title,
		genres: append([]string(nil), genres...),
		joiner: joiner,
	}
}

// Path returns the file path the track was read from.
func (t *Track) Path() string { return t.path }

// Title returns the track title tag.
func (t *Track) Title() string { return t.title }

// Genre returns the genre entries joined with the track's separator.
func (t *Track) Genre() string { return strings.Join(t.genres, t.joiner) }

// Genres returns a copy of the current genre list.
func (t *Track) Genres() []string {
	return append([]string(nil), t.genres...)
}

// SetGenres replaces the genre list.
func (t *Track) SetGenres(genres []string) {
	t.genres = append([]string(nil), genres...)
	t.updated = true
}

// Updated reports whether SetGenres has been called on the track.
func (t *Track) Updated() bool { return t.updated }
