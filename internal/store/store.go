// Package store handles SQLite persistence of evaluation runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNoRuns is returned by LatestRun on an empty history.
var ErrNoRuns = errors.New("no runs recorded")

// Run is one recorded invocation.
type Run struct {
	ID        string
	CreatedAt time.Time
	Command   string
	Options   []string
}

// Value is one number produced by a run. Q2 is zero for integrated and
// diagnostic values; a failed evaluation round-trips as NaN.
type Value struct {
	Label string
	Kind  string
	Q2    float64
	Value float64
}

// Store wraps SQLite access for run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			command TEXT NOT NULL,
			options TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_values (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			label TEXT NOT NULL,
			kind TEXT NOT NULL,
			q2 REAL NOT NULL,
			value REAL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its values and returns the new run id.
func (s *Store) InsertRun(ctx context.Context, command string, opts []string, values []Value) (string, error) {
	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, command, options) VALUES (?, ?, ?, ?)`,
		id,
		s.now().UTC().Format(time.RFC3339Nano),
		command,
		strings.Join(opts, ","),
	)
	if err != nil {
		return "", err
	}

	if len(values) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO run_values (run_id, seq, label, kind, q2, value) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, v := range values {
			if _, err = stmt.ExecContext(ctx, id, i, v.Label, v.Kind, v.Q2, nullable(v.Value)); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, command, options FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
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

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt, opts string
		if err := rows.Scan(&r.ID, &createdAt, &r.Command, &opts); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		r.CreatedAt = parsed
		if opts != "" {
			r.Options = strings.Split(opts, ",")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// LatestRun returns the newest run with the given command, or any command
// when command is empty.
func (s *Store) LatestRun(ctx context.Context, command string) (Run, error) {
	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		return Run{}, err
	}
	for _, r := range runs {
		if command == "" || r.Command == command {
			return r, nil
		}
	}
	return Run{}, ErrNoRuns
}

// RunValues returns the values of a run in insertion order.
func (s *Store) RunValues(ctx context.Context, runID string) ([]Value, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %q not found", runID)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, kind, q2, value FROM run_values WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []Value
	for rows.Next() {
		var v Value
		var value sql.NullFloat64
		if err := rows.Scan(&v.Label, &v.Kind, &v.Q2, &value); err != nil {
			return nil, err
		}
		v.Value = nanIfNull(value)
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
