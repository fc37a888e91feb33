// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tuigral/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for computation history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS computations (
			id INTEGER PRIMARY KEY,
			computed_at TEXT NOT NULL,
			function TEXT NOT NULL,
			x_min REAL NOT NULL,
			x_max REAL NOT NULL,
			y_min REAL NOT NULL,
			y_max REAL NOT NULL,
			lower REAL NOT NULL,
			upper REAL NOT NULL,
			step REAL NOT NULL,
			area REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_computations_computed_at ON computations(computed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores one computation.
func (s *Store) Record(ctx context.Context, c model.Computation) error {
	_, err := s.Insert(ctx, c)
	return err
}

// Insert stores one computation and returns its id.
func (s *Store) Insert(ctx context.Context, c model.Computation) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO computations (computed_at, function, x_min, x_max, y_min, y_max, lower, upper, step, area)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ComputedAt.UTC().Format(time.RFC3339Nano),
		c.Function,
		c.Window.XMin,
		c.Window.XMax,
		c.Window.YMin,
		c.Window.YMax,
		c.Bounds.Lower,
		c.Bounds.Upper,
		c.Step,
		c.Area,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListHistory returns the most recent computations, oldest first. A
// non-positive last returns every computation. Entries are ordered by id;
// computed_at text does not sort chronologically.
func (s *Store) ListHistory(ctx context.Context, last int) ([]model.HistoryEntry, error) {
	query := `SELECT id, computed_at, function, x_min, x_max, y_min, y_max, lower, upper, step, area
		FROM computations
		ORDER BY id DESC`
	args := []any{}
	if last > 0 {
		query += ` LIMIT ?`
		args = append(args, last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var computedAt string
		if err := rows.Scan(&e.ID, &computedAt, &e.Function,
			&e.Window.XMin, &e.Window.XMax, &e.Window.YMin, &e.Window.YMax,
			&e.Bounds.Lower, &e.Bounds.Upper, &e.Step, &e.Area); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, computedAt)
		if err != nil {
			return nil, err
		}
		e.ComputedAt = parsed
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
