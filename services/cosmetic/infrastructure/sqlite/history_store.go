// Package sqlite persists the CLI's history and catalog snapshot in a local
// SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

const (
	// RecentSearchesKey is the fixed key the recent searches list is stored under.
	RecentSearchesKey = "recentSearches"
	// RecentlyViewedKey is the fixed key the recently viewed list is stored under.
	RecentlyViewedKey = "recentlyViewed"
)

// DB is an open history database. One DB backs any number of HistoryStores.
type DB struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.db.Exec(`
	CREATE TABLE IF NOT EXISTS history (
		owner      TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (owner, key)
	);
	CREATE TABLE IF NOT EXISTS catalog_snapshots (
		id         TEXT PRIMARY KEY,
		items      TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	);`)
	return err
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Store returns a HistoryStore for the list saved under key.
func (d *DB) Store(key string) *HistoryStore {
	return &HistoryStore{db: d.db, key: key}
}

// HistoryStore keeps one JSON-encoded list per owner under a fixed key.
type HistoryStore struct {
	db  *sql.DB
	key string
}

var _ repositories.HistoryStore = (*HistoryStore)(nil)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Recent returns the saved list. A missing row or an unreadable value is an
// empty list, as if nothing had been stored yet.
func (s *HistoryStore) Recent(ctx context.Context, owner string) ([]string, error) {
	return s.read(ctx, s.db, owner)
}

// Save replaces the stored list.
func (s *HistoryStore) Save(ctx context.Context, owner string, list []string) error {
	return s.write(ctx, s.db, owner, list)
}

// Update reads, transforms and writes the list in one transaction.
func (s *HistoryStore) Update(ctx context.Context, owner string, fn func([]string) []string) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.key, err)
	}
	defer tx.Rollback() //nolint:errcheck

	list, err := s.read(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	list = fn(list)
	if list == nil {
		list = []string{}
	}
	if err := s.write(ctx, tx, owner, list); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update %s: %w", s.key, err)
	}
	return list, nil
}

func (s *HistoryStore) read(ctx context.Context, q queryer, owner string) ([]string, error) {
	var raw string
	err := q.QueryRowContext(ctx,
		`SELECT value FROM history WHERE owner = ? AND key = ?`, owner, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return []string{}, nil
	}
	return list, nil
}

func (s *HistoryStore) write(ctx context.Context, q queryer, owner string, list []string) error {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO history (owner, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (owner, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		owner, s.key, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored list.
func (s *HistoryStore) Clear(ctx context.Context, owner string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM history WHERE owner = ? AND key = ?`, owner, s.key); err != nil {
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	return nil
}
