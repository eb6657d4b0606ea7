// Package sqlite contains the embedded fallback implementations of
// repository interfaces, backed by a local file. Selected when no
// Postgres DSN is configured.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store owns the SQLite handle shared by the repositories.
type Store struct{ db *sql.DB }

// Open opens the SQLite file at path, creating it if needed.
func Open(path string) (*Store, error) {
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureForeignKeysEnabled(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// ensureForeignKeysEnabled guards against a DSN that failed to apply the
// foreign_keys pragma, which would silently disable ON DELETE CASCADE.
func ensureForeignKeysEnabled(db *sql.DB) error {
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check sqlite foreign key pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}

// DB exposes the handle so migrations can run against it.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the SQLite handle.
func (s *Store) Close() error { return s.db.Close() }

// Timestamps are stored as unix milliseconds.
func toMillis(t time.Time) int64   { return t.UTC().UnixMilli() }
func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// nullMillis converts an optional time for a nullable column.
func nullMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return toMillis(*t)
}
