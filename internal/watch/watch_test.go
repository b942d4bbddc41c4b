package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"genremap/internal/config"
	"genremap/internal/logging"
	"genremap/internal/watch"
)

func TestRunReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	cfg := config.Default()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save initial config: %v", err)
	}

	reloaded := make(chan *config.Config, 1)
	watcher := watch.New(configPath, 50*time.Millisecond, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watcher a moment to install before touching the file.
	time.Sleep(100 * time.Millisecond)

	cfg.Mapping.Enabled = true
	cfg.Mapping.Pairs = "*rock*=Rock"
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save updated config: %v", err)
	}

	select {
	case fresh := <-reloaded:
		if !fresh.Mapping.Enabled {
			t.Fatal("expected reloaded config to have mapping enabled")
		}
		if fresh.Mapping.Pairs != "*rock*=Rock" {
			t.Fatalf("unexpected reloaded pairs: %q", fresh.Mapping.Pairs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher shutdown")
	}
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	cfg := config.Default()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save initial config: %v", err)
	}

	reloaded := make(chan *config.Config, 1)
	watcher := watch.New(configPath, 50*time.Millisecond, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}

	select {
	case <-reloaded:
		t.Fatal("unexpected reload for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
