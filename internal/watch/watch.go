package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"genremap/internal/config"
	"genremap/internal/logging"
)

// DefaultDebounce is how long the watcher waits after the last write
// before reloading. Editors and atomic-save tools emit several events per
// save; the delay collapses them into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads the configuration file whenever it changes on disk and
// hands the fresh config to a callback.
type Watcher struct {
	configPath string
	debounce   time.Duration
	onReload   func(*config.Config)
	logger     *slog.Logger
}

// New builds a watcher for the config file at configPath. A non-positive
// debounce uses DefaultDebounce.
func New(configPath string, debounce time.Duration, onReload func(*config.Config), logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		configPath: filepath.Clean(configPath),
		debounce:   debounce,
		onReload:   onReload,
		logger:     logging.NewComponentLogger(logger, "watch"),
	}
}

// Run blocks watching the config file until ctx is done. The parent
// directory is watched rather than the file itself so saves that replace
// the file keep being observed.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.configPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching configuration", logging.String("path", w.configPath))

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.configPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, _, _, err := config.Load(w.configPath)
	if err != nil {
		w.logger.Warn("configuration reload failed", logging.Error(err))
		return
	}
	w.logger.Info("configuration reloaded", logging.String("path", w.configPath))
	w.onReload(cfg)
}
