package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"genremap/internal/config"
)

// Run is one apply invocation. FinishedAt is zero until the run completes.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	MusicDir      string
	DryRun        bool
	TracksSeen    int
	TracksChanged int
}

// Change records one track whose genre field a run rewrote. Before and
// After hold the joined genre field around the rewrite.
type Change struct {
	RunID  string
	Path   string
	Title  string
	Before string
	After  string
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the history database file.
func (s *Store) Path() string { return s.path }

// BeginRun inserts a new run record and returns it.
func (s *Store) BeginRun(ctx context.Context, musicDir string, dryRun bool) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		MusicDir:  musicDir,
		DryRun:    dryRun,
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, music_dir, dry_run) VALUES (?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.MusicDir,
		boolToInt(run.DryRun),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordChange appends one rewritten track to the run's change list.
func (s *Store) RecordChange(ctx context.Context, change Change) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO changes (run_id, path, title, before_genres, after_genres)
         VALUES (?, ?, ?, ?, ?)`,
		change.RunID,
		change.Path,
		change.Title,
		change.Before,
		change.After,
	)
	if err != nil {
		return fmt.Errorf("insert change: %w", err)
	}
	return nil
}

// FinishRun stamps the run's completion time and final counters.
func (s *Store) FinishRun(ctx context.Context, runID string, seen, changed int) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, tracks_seen = ?, tracks_changed = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		seen,
		changed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run %q", runID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, music_dir, dry_run, tracks_seen, tracks_changed
              FROM runs ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt sql.NullString
			dryRun     int
		)
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.MusicDir, &dryRun, &run.TracksSeen, &run.TracksChanged); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse run start time: %w", err)
		}
		if finishedAt.Valid {
			if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String); err != nil {
				return nil, fmt.Errorf("parse run finish time: %w", err)
			}
		}
		run.DryRun = dryRun != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Changes returns the change list for one run in insertion order.
func (s *Store) Changes(ctx context.Context, runID string) ([]Change, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, path, title, before_genres, after_genres
         FROM changes WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var change Change
		if err := rows.Scan(&change.RunID, &change.Path, &change.Title, &change.Before, &change.After); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate changes: %w", err)
	}
	return changes, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
