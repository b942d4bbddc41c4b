package host_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"genremap/internal/config"
	"genremap/internal/host"
	"genremap/internal/hostapi"
	"genremap/internal/logging"
	"genremap/internal/plugin"
)

func newConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Library.MusicDir = filepath.Join(dir, "music")
	return &cfg, filepath.Join(dir, "config.toml")
}

func TestStoreReadsConfigValues(t *testing.T) {
	cfg, _ := newConfig(t)
	cfg.Mapping.Enabled = true
	cfg.Mapping.Pairs = "*rock*=Rock"
	cfg.Tags.GenreSeparator = " / "

	h := host.NewStandalone(cfg, "", nil, logging.NewNop())
	store := h.PluginConfig()

	if !store.Bool(plugin.OptEnabled) {
		t.Fatal("expected enabled to read true")
	}
	if store.Bool(plugin.OptUseRegex) {
		t.Fatal("expected use_regex to read false")
	}
	if got := store.String(plugin.OptPairs); got != "*rock*=Rock" {
		t.Fatalf("unexpected pairs: %q", got)
	}
	if got := store.String(plugin.OptGenreSeparator); got != " / " {
		t.Fatalf("unexpected separator: %q", got)
	}
	if _, ok := store.Lookup("unknown_key"); ok {
		t.Fatal("expected unknown key to be unknown")
	}

	store.RegisterOption("extra_key", true)
	if !store.Bool("extra_key") {
		t.Fatal("expected registered default to be readable")
	}
}

func TestStoreWritesPersistToDisk(t *testing.T) {
	cfg, configPath := newConfig(t)
	h := host.NewStandalone(cfg, configPath, nil, logging.NewNop())
	store := h.PluginConfig()

	store.SetBool(plugin.OptEnabled, true)
	store.SetString(plugin.OptPairs, "jazz=Jazz")

	loaded, _, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected persisted config file")
	}
	if !loaded.Mapping.Enabled {
		t.Fatal("expected enabled persisted")
	}
	if loaded.Mapping.Pairs != "jazz=Jazz" {
		t.Fatalf("unexpected persisted pairs: %q", loaded.Mapping.Pairs)
	}
}

func TestUpdateConfigSwapsValues(t *testing.T) {
	cfg, _ := newConfig(t)
	h := host.NewStandalone(cfg, "", nil, logging.NewNop())
	store := h.PluginConfig()

	if store.Bool(plugin.OptEnabled) {
		t.Fatal("expected mapping disabled initially")
	}

	next, _ := newConfig(t)
	next.Mapping.Enabled = true
	h.UpdateConfig(next)

	if !store.Bool(plugin.OptEnabled) {
		t.Fatal("expected swapped config to be visible")
	}
	if h.Config() != next {
		t.Fatal("expected Config to return swapped config")
	}
}

type recordTrack struct {
	genre string
	calls int
}

func (r *recordTrack) Title() string { return "t" }

func (r *recordTrack) Genre() string { return r.genre }

func (r *recordTrack) SetGenres(genres []string) {
	r.genre = strings.Join(genres, hostapi.DefaultMultiValueJoiner)
	r.calls++
}

func TestProcessRunsRegisteredProcessors(t *testing.T) {
	cfg, _ := newConfig(t)
	h := host.NewStandalone(cfg, "", nil, logging.NewNop())

	var order []string
	h.RegisterTrackMetadataProcessor(func(md hostapi.TrackMetadata) {
		order = append(order, "first")
	})
	h.RegisterTrackMetadataProcessor(func(md hostapi.TrackMetadata) {
		order = append(order, "second")
	})

	h.Process(&recordTrack{genre: "Rock"})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected processor order: %v", order)
	}
}

func TestLegacyHiddenWithoutConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.toml")
	if err := os.WriteFile(path, []byte("genre_mapper_enabled = \"true\"\n"), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}
	legacy, err := host.OpenLegacyFile(path, logging.NewNop())
	if err != nil {
		t.Fatalf("OpenLegacyFile: %v", err)
	}

	cfg, _ := newConfig(t)
	h := host.NewStandalone(cfg, "", legacy, logging.NewNop())
	if h.LegacyConfig() != nil {
		t.Fatal("host without a config path must not expose legacy settings")
	}
}

func TestOpenLegacyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.toml")

	missing, err := host.OpenLegacyFile(path, logging.NewNop())
	if err != nil {
		t.Fatalf("OpenLegacyFile on missing file: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil LegacyFile for missing file")
	}

	contents := "genre_mapper_enabled = \"true\"\ngenre_mapper_replacement_pairs = \"a=b\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	legacy, err := host.OpenLegacyFile(path, logging.NewNop())
	if err != nil {
		t.Fatalf("OpenLegacyFile: %v", err)
	}
	if value, ok := legacy.RawValue(plugin.OptPairs); !ok || value != "a=b" {
		t.Fatalf("unexpected legacy pairs: %q ok=%v", value, ok)
	}

	legacy.Remove(plugin.OptPairs)
	if _, ok := legacy.RawValue(plugin.OptPairs); ok {
		t.Fatal("expected removed key to be gone")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rewritten legacy file: %v", err)
	}
	if strings.Contains(string(data), "replacement_pairs") {
		t.Fatalf("expected rewritten file to drop key: %s", data)
	}
	if !strings.Contains(string(data), "genre_mapper_enabled") {
		t.Fatalf("expected remaining key to persist: %s", data)
	}
}
