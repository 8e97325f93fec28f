package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Execution is one recorded command completion, accumulated between daily
// flushes.
type Execution struct {
	ID        string
	Command   string
	Version   string
	RuntimeMS int64
	Failed    bool
	CreatedAt time.Time
}

// ExecutionStore persists execution records in sqlite.
type ExecutionStore struct {
	db *sql.DB
}

// OpenExecutionStore opens (and if needed initializes) the execution
// database at path.
func OpenExecutionStore(path string) (*ExecutionStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS executions (
	 id TEXT PRIMARY KEY,
	 command TEXT NOT NULL,
	 version TEXT NOT NULL,
	 runtime_ms INTEGER NOT NULL,
	 failed INTEGER NOT NULL DEFAULT 0,
	 created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init executions table: %w", err)
	}
	return &ExecutionStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *ExecutionStore) Close() error { return s.db.Close() }

// Append records one completion. The ID is generated when empty.
func (s *ExecutionStore) Append(ctx context.Context, e Execution) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO executions(id, command, version, runtime_ms, failed)
	VALUES (?, ?, ?, ?, ?);
	`, e.ID, e.Command, e.Version, e.RuntimeMS, boolToInt(e.Failed))
	return err
}

// List returns every execution recorded since the last flush, oldest first.
func (s *ExecutionStore) List(ctx context.Context) ([]Execution, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, command, version, runtime_ms, failed, created_at
	FROM executions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Execution
	for rows.Next() {
		var e Execution
		var failed int
		if err := rows.Scan(&e.ID, &e.Command, &e.Version, &e.RuntimeMS, &failed, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Failed = failed != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of pending execution records.
func (s *ExecutionStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM executions`).Scan(&n)
	return n, err
}

// Clear removes all pending execution records after a successful flush.
func (s *ExecutionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM executions`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
