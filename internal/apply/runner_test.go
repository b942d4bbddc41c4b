package apply_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"genremap/internal/apply"
	"genremap/internal/config"
	"genremap/internal/history"
	"genremap/internal/library"
	"genremap/internal/logging"
	"genremap/internal/testsupport"
)

type fakeReader struct {
	tags map[string]fakeTags
}

type fakeTags struct {
	title  string
	genres []string
}

func (r *fakeReader) ReadTags(path string) (string, []string, error) {
	tags, ok := r.tags[filepath.Base(path)]
	if !ok {
		return "", nil, errors.New("unexpected file")
	}
	return tags.title, tags.genres, nil
}

// fakeWriter records genre writes. When reader is set, a write updates the
// reader's tags so later scans observe what was persisted.
type fakeWriter struct {
	reader *fakeReader
	writes map[string][]string
	err    error
}

func (w *fakeWriter) WriteGenres(path string, genres []string) error {
	if w.err != nil {
		return w.err
	}
	if w.writes == nil {
		w.writes = make(map[string][]string)
	}
	name := filepath.Base(path)
	w.writes[name] = append([]string(nil), genres...)
	if w.reader != nil {
		tags := w.reader.tags[name]
		tags.genres = append([]string(nil), genres...)
		w.reader.tags[name] = tags
	}
	return nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func newRunner(t *testing.T, cfg *config.Config, reader library.TagReader, writer library.TagWriter) (*apply.Runner, *history.Store) {
	t.Helper()
	store := testsupport.MustOpenStore(t, cfg)
	scanner := library.NewScannerWithReader(cfg, reader, logging.NewNop())
	return apply.NewRunner(cfg, "", store, scanner, writer, logging.NewNop()), store
}

func TestRunRewritesAndRecordsChanges(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPairs("*rock*=Rock\njazz=Jazz"))
	if err := os.MkdirAll(cfg.Library.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}
	writeFiles(t, cfg.Library.MusicDir, "a.flac", "b.mp3")

	reader := &fakeReader{tags: map[string]fakeTags{
		"a.flac": {title: "Alpha", genres: []string{"Hard Rock"}},
		"b.mp3":  {title: "Beta", genres: []string{"Jazz"}},
	}}
	writer := &fakeWriter{reader: reader}
	runner, store := newRunner(t, cfg, reader, writer)

	summary, err := runner.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.TracksSeen != 2 {
		t.Fatalf("expected 2 tracks seen, got %d", summary.TracksSeen)
	}
	// "Jazz" maps to itself after title casing, so only a.flac changes.
	if summary.TracksChanged != 1 {
		t.Fatalf("expected 1 track changed, got %d", summary.TracksChanged)
	}
	if len(summary.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(summary.Changes))
	}
	change := summary.Changes[0]
	if change.Title != "Alpha" || change.Before != "Hard Rock" || change.After != "Rock" {
		t.Fatalf("unexpected change: %+v", change)
	}
	if got := writer.writes["a.flac"]; len(got) != 1 || got[0] != "Rock" {
		t.Fatalf("expected [Rock] written to a.flac, got %v", got)
	}
	if _, ok := writer.writes["b.mp3"]; ok {
		t.Fatal("unchanged track should not be rewritten")
	}

	runs, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].TracksSeen != 2 || runs[0].TracksChanged != 1 {
		t.Fatalf("unexpected run counters: %+v", runs[0])
	}
	recorded, err := store.Changes(context.Background(), runs[0].ID)
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if len(recorded) != 1 || recorded[0] != change {
		t.Fatalf("unexpected recorded changes: %+v", recorded)
	}
}

func TestRunDryRunIsFlagged(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPairs("*rock*=Rock"))
	if err := os.MkdirAll(cfg.Library.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}
	writeFiles(t, cfg.Library.MusicDir, "a.flac")

	reader := &fakeReader{tags: map[string]fakeTags{
		"a.flac": {title: "Alpha", genres: []string{"Hard Rock"}},
	}}
	writer := &fakeWriter{}
	runner, store := newRunner(t, cfg, reader, writer)

	summary, err := runner.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !summary.DryRun {
		t.Fatal("expected dry run summary")
	}
	if summary.TracksChanged != 1 {
		t.Fatalf("expected 1 track flagged, got %d", summary.TracksChanged)
	}
	if len(writer.writes) != 0 {
		t.Fatalf("dry run must not write tags, wrote %v", writer.writes)
	}

	runs, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || !runs[0].DryRun {
		t.Fatalf("expected dry run recorded, got %+v", runs)
	}
}

func TestRunPersistedTagsQuietSecondRun(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPairs("*rock*=Rock"))
	if err := os.MkdirAll(cfg.Library.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}
	writeFiles(t, cfg.Library.MusicDir, "a.flac")

	reader := &fakeReader{tags: map[string]fakeTags{
		"a.flac": {title: "Alpha", genres: []string{"Hard Rock"}},
	}}
	runner, _ := newRunner(t, cfg, reader, &fakeWriter{reader: reader})

	first, err := runner.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.TracksChanged != 1 {
		t.Fatalf("expected first run to change 1 track, got %d", first.TracksChanged)
	}

	second, err := runner.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.TracksChanged != 0 {
		t.Fatalf("expected second run to change nothing, got %d", second.TracksChanged)
	}
}

func TestRunSkipsTrackWhenTagWriteFails(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPairs("*rock*=Rock"))
	if err := os.MkdirAll(cfg.Library.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}
	writeFiles(t, cfg.Library.MusicDir, "a.flac")

	reader := &fakeReader{tags: map[string]fakeTags{
		"a.flac": {title: "Alpha", genres: []string{"Hard Rock"}},
	}}
	writer := &fakeWriter{err: errors.New("file is read-only")}
	runner, store := newRunner(t, cfg, reader, writer)

	summary, err := runner.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.TracksChanged != 0 {
		t.Fatalf("failed write must not count as changed, got %d", summary.TracksChanged)
	}

	runs, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	recorded, err := store.Changes(context.Background(), runs[0].ID)
	if err != nil {
		t.Fatalf("Changes: %v", err)
	}
	if len(recorded) != 0 {
		t.Fatalf("failed write must not be recorded, got %+v", recorded)
	}
}

func TestRunWithoutConfigPathKeepsLegacyFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPairs("*rock*=Rock"))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	legacyPath := filepath.Join(cfg.Paths.DataDir, "legacy.toml")
	legacyBody := []byte("genre_mapper_replacement_pairs = \"*rock*=Rock\"\n")
	if err := os.WriteFile(legacyPath, legacyBody, 0o644); err != nil {
		t.Fatalf("write legacy settings: %v", err)
	}
	if err := os.MkdirAll(cfg.Library.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}

	runner, _ := newRunner(t, cfg, &fakeReader{}, &fakeWriter{})
	if _, err := runner.Run(context.Background(), false); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	after, err := os.ReadFile(legacyPath)
	if err != nil {
		t.Fatalf("read legacy settings: %v", err)
	}
	if string(after) != string(legacyBody) {
		t.Fatalf("legacy settings were rewritten: %q", after)
	}
}

func TestRunMappingDisabledLeavesTracksAlone(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Mapping.Pairs = "*rock*=Rock"
	if err := os.MkdirAll(cfg.Library.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}
	writeFiles(t, cfg.Library.MusicDir, "a.flac")

	reader := &fakeReader{tags: map[string]fakeTags{
		"a.flac": {title: "Alpha", genres: []string{"Hard Rock"}},
	}}
	runner, _ := newRunner(t, cfg, reader, &fakeWriter{})

	summary, err := runner.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.TracksChanged != 0 {
		t.Fatalf("expected no changes with mapping disabled, got %d", summary.TracksChanged)
	}
}

func TestRunRefusesConcurrentRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPairs("*rock*=Rock"))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	// Hold the lock the runner will try to acquire.
	other := flock.New(filepath.Join(cfg.Paths.DataDir, "apply.lock"))
	ok, err := other.TryLock()
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	if !ok {
		t.Fatal("expected to acquire lock")
	}
	defer func() { _ = other.Unlock() }()

	runner, _ := newRunner(t, cfg, &fakeReader{}, &fakeWriter{})
	if _, err := runner.Run(context.Background(), false); !errors.Is(err, apply.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}
