package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"genremap/internal/config"
	"genremap/internal/history"
	"genremap/internal/host"
	"genremap/internal/library"
	"genremap/internal/logging"
	"genremap/internal/plugin"
)

// ErrLocked is returned when another apply run holds the lock file.
var ErrLocked = errors.New("another apply run is in progress")

// Summary reports what one run did.
type Summary struct {
	RunID         string
	DryRun        bool
	TracksSeen    int
	TracksChanged int
	Changes       []history.Change
}

// Runner orchestrates one apply pass: enable the plugin against the
// standalone host, scan the library, feed every track through the
// processor pipeline, write rewritten tags back to disk, and record the
// changes in history.
type Runner struct {
	cfg        *config.Config
	configPath string
	store      *history.Store
	scanner    *library.Scanner
	writer     library.TagWriter
	logger     *slog.Logger
}

// NewRunner builds a runner. configPath may be empty, in which case option
// writes made during the run are not persisted and legacy migration is
// skipped.
func NewRunner(cfg *config.Config, configPath string, store *history.Store, scanner *library.Scanner, writer library.TagWriter, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		configPath: configPath,
		store:      store,
		scanner:    scanner,
		writer:     writer,
		logger:     logging.NewComponentLogger(logger, "apply"),
	}
}

// Run executes one apply pass. Dry runs are recorded in history with the
// dry_run flag set so they can be told apart when listing.
func (r *Runner) Run(ctx context.Context, dryRun bool) (*Summary, error) {
	lock := flock.New(filepath.Join(r.cfg.Paths.DataDir, "apply.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire apply lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	// Legacy migration rewrites the legacy file as keys are removed, so
	// it only runs when option writes can be persisted back to a config
	// file. Otherwise the 2.x settings would be dropped.
	var legacy *host.LegacyFile
	if r.configPath != "" {
		legacy, err = host.OpenLegacyFile(filepath.Join(r.cfg.Paths.DataDir, "legacy.toml"), r.logger)
		if err != nil {
			return nil, err
		}
	}

	standalone := r.newHost(legacy)
	plugin.Enable(standalone)

	tracks, err := r.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.Info("library scanned",
		logging.String("music_dir", r.cfg.Library.MusicDir),
		logging.Int("tracks", len(tracks)))

	run, err := r.store.BeginRun(ctx, r.cfg.Library.MusicDir, dryRun)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: run.ID, DryRun: dryRun}
	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary.TracksSeen++

		before := track.Genre()
		standalone.Process(track)
		after := track.Genre()
		if !track.Updated() || after == before {
			continue
		}

		if !dryRun {
			if err := r.writer.WriteGenres(track.Path(), track.Genres()); err != nil {
				r.logger.Warn("unable to write tags",
					logging.String("path", track.Path()),
					logging.Error(err))
				continue
			}
		}
		summary.TracksChanged++

		change := history.Change{
			RunID:  run.ID,
			Path:   track.Path(),
			Title:  track.Title(),
			Before: before,
			After:  after,
		}
		summary.Changes = append(summary.Changes, change)
		if err := r.store.RecordChange(ctx, change); err != nil {
			return nil, err
		}
	}

	if err := r.store.FinishRun(ctx, run.ID, summary.TracksSeen, summary.TracksChanged); err != nil {
		return nil, err
	}
	r.logger.Info("run finished",
		logging.String("run_id", run.ID),
		logging.Bool("dry_run", dryRun),
		logging.Int("seen", summary.TracksSeen),
		logging.Int("changed", summary.TracksChanged))
	return summary, nil
}

func (r *Runner) newHost(legacy *host.LegacyFile) *host.Standalone {
	if legacy == nil {
		return host.NewStandalone(r.cfg, r.configPath, nil, r.logger)
	}
	return host.NewStandalone(r.cfg, r.configPath, legacy, r.logger)
}
