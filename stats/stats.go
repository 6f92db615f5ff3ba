// Package stats records finished runs in a local SQLite database.
package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one completed pass through every level.
type Run struct {
	ID     int64
	Levels int
	Deaths int
	// Frames is the run length in update ticks.
	Frames    uint64
	Seed      uint64
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open creates the database at path and its parent directories if needed.
// A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("stats: expand home: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("stats: create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("stats: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: connect: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			levels INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(deaths, frames);
	`)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores r and returns its id. A zero CreatedAt is set to now.
func (s *Store) RecordRun(r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(
		"INSERT INTO runs (levels, deaths, frames, seed, created_at) VALUES (?, ?, ?, ?, ?)",
		r.Levels, r.Deaths, int64(r.Frames), int64(r.Seed), r.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("stats: record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("stats: inserted id: %w", err)
	}
	return id, nil
}

const runColumns = "id, levels, deaths, frames, seed, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r            Run
		frames, seed int64
		createdAt    int64
	)
	if err := row.Scan(&r.ID, &r.Levels, &r.Deaths, &frames, &seed, &createdAt); err != nil {
		return r, err
	}
	r.Frames = uint64(frames)
	r.Seed = uint64(seed)
	r.CreatedAt = time.Unix(createdAt, 0)
	return r, nil
}

// RecentRuns returns up to limit runs, newest first. limit <= 0 means 10.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("stats: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: iterate runs: %w", err)
	}
	return runs, nil
}

// BestRun is the run with the fewest deaths, then the fewest frames. ok is
// false when no run has been recorded.
func (s *Store) BestRun() (r Run, ok bool, err error) {
	r, err = scanRun(s.db.QueryRow(
		"SELECT " + runColumns + " FROM runs ORDER BY deaths ASC, frames ASC, id ASC LIMIT 1",
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("stats: best run: %w", err)
	}
	return r, true, nil
}
