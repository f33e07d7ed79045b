// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     history
// Description: SQLite store for evaluated expressions
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	perr "github.com/msto63/pascal/foundation/core/error"
)

// Entry is one evaluated input line together with what was printed for it
type Entry struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	OK         bool      `json:"ok"`
	CreatedAt  time.Time `json:"created_at"`
}

// Recorder is the subset of the store the front-ends write to
type Recorder interface {
	Add(ctx context.Context, entry *Entry) error
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// Store persists history entries in SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the history database at cfg.Path
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, dbError(err, "failed to create directory", "open").WithDetail("path", cfg.Path)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database", "open").WithDetail("path", cfg.Path)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "open").WithDetail("path", cfg.Path)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL DEFAULT '',
		expression TEXT NOT NULL,
		result TEXT NOT NULL,
		ok INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_evaluations_session ON evaluations(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add stores an entry, filling in ID and CreatedAt when unset
func (s *Store) Add(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, session_id, expression, result, ok, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Expression, entry.Result, entry.OK, entry.CreatedAt)
	if err != nil {
		return dbError(err, "failed to add entry", "add")
	}
	return nil
}

// List returns the most recent entries, oldest first. A limit of zero or
// less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, expression, result, ok, created_at
		FROM evaluations ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, dbError(err, "failed to list entries", "list")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Expression, &e.Result, &e.OK, &e.CreatedAt); err != nil {
			return nil, dbError(err, "failed to scan entry", "list")
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to list entries", "list")
	}
	slices.Reverse(entries)
	return entries, nil
}

// Count returns the number of stored entries
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		return 0, dbError(err, "failed to count entries", "count")
	}
	return n, nil
}

// Clear deletes all entries and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations`)
	if err != nil {
		return 0, dbError(err, "failed to clear history", "clear")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// PingContext verifies the database connection
func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func dbError(err error, message, op string) *perr.Error {
	return perr.Wrap(err, message).
		WithCode(perr.CodeDatabaseError).
		WithOperation("history." + op)
}
