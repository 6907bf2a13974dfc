package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"photoforge/internal/fileutil"
)

const timeFormat = time.RFC3339Nano

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run journal database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := fileutil.EnsureDir(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

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

// Path reports the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    command TEXT NOT NULL,
    input_dir TEXT NOT NULL,
    workers INTEGER NOT NULL,
    threads_per_worker INTEGER NOT NULL,
    found INTEGER NOT NULL,
    succeeded INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE TABLE IF NOT EXISTS run_item_failures (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source TEXT NOT NULL,
    detail TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_item_failures_run_id ON run_item_failures(run_id);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordRun inserts one completed run into the journal.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, command, input_dir, workers, threads_per_worker,
    found, succeeded, skipped, failed, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.InputDir, run.Workers, run.ThreadsPerWorker,
		run.Found, run.Succeeded, run.Skipped, run.Failed,
		run.StartedAt.UTC().Format(timeFormat), run.FinishedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecordItemFailures journals the failed items of a run.
func (s *Store) RecordItemFailures(ctx context.Context, runID string, failures []ItemFailure) error {
	if len(failures) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin failure insert: %w", err)
	}
	defer tx.Rollback()

	for _, failure := range failures {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_item_failures (run_id, source, detail) VALUES (?, ?, ?)",
			runID, failure.Source, failure.Detail); err != nil {
			return fmt.Errorf("record item failure: %w", err)
		}
	}
	return tx.Commit()
}

// ListItemFailures returns the failed items recorded for one run.
func (s *Store) ListItemFailures(ctx context.Context, runID string) ([]ItemFailure, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, source, detail FROM run_item_failures WHERE run_id = ? ORDER BY source",
		runID)
	if err != nil {
		return nil, fmt.Errorf("list item failures: %w", err)
	}
	defer rows.Close()

	var failures []ItemFailure
	for rows.Next() {
		var failure ItemFailure
		if err := rows.Scan(&failure.RunID, &failure.Source, &failure.Detail); err != nil {
			return nil, fmt.Errorf("scan item failure: %w", err)
		}
		failures = append(failures, failure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item failures: %w", err)
	}
	return failures, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
SELECT id, command, input_dir, workers, threads_per_worker,
    found, succeeded, skipped, failed, started_at, finished_at
FROM runs ORDER BY started_at DESC`
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
			finishedAt string
		)
		if err := rows.Scan(&run.ID, &run.Command, &run.InputDir,
			&run.Workers, &run.ThreadsPerWorker,
			&run.Found, &run.Succeeded, &run.Skipped, &run.Failed,
			&startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(timeFormat, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(timeFormat, finishedAt); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
