// Package store is the SQLite persistence layer: profiles, rules, watched
// folders, schedules, and the run journal the organizer package writes
// and replays. The embedded schema, WAL mode, and foreign-key enforcement
// are applied eagerly on Open so every caller gets the same guarantees
// without repeating setup; queries are hand-written rather than generated.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the database connection every other package in this repo
// persists through.
type Store struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at dbPath, enabling WAL mode and
// foreign key enforcement and applying the embedded schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	escapedPath := strings.ReplaceAll(dbPath, " ", "%20")
	db, err := sql.Open("sqlite", "file:"+escapedPath+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the raw connection for callers that need a query this
// package doesn't offer yet (migrations, ad-hoc reporting).
func (s *Store) DB() *sql.DB { return s.db }

// WithTx runs fn inside a transaction, rolling back unless fn returns nil.
// Activate uses it so exactly one profile is ever flagged active; other
// multi-row writes such as SaveRule and SetProfileRules run as standalone
// statements instead.
func (s *Store) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
