package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

// SnapshotStore keeps the newest catalog snapshot so the CLI can skip the
// download while it is fresh. Older snapshots are replaced on Save.
type SnapshotStore struct {
	db *sql.DB
}

var _ repositories.SnapshotRepository = (*SnapshotStore)(nil)

// Snapshots returns the database's snapshot store.
func (d *DB) Snapshots() *SnapshotStore {
	return &SnapshotStore{db: d.db}
}

func (s *SnapshotStore) Save(ctx context.Context, items []models.Cosmetic, fetchedAt time.Time) (*repositories.Snapshot, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	snap := &repositories.Snapshot{ID: uuid.New(), Items: items, FetchedAt: fetchedAt.UTC()}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_snapshots`); err != nil {
		return nil, fmt.Errorf("prune snapshots: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_snapshots (id, items, fetched_at) VALUES (?, ?, ?)`,
		snap.ID.String(), string(raw), snap.FetchedAt.Format(time.RFC3339Nano)); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}

func (s *SnapshotStore) Latest(ctx context.Context) (*repositories.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, items, fetched_at FROM catalog_snapshots ORDER BY fetched_at DESC LIMIT 1`)
	return scanSnapshot(row)
}

func (s *SnapshotStore) Get(ctx context.Context, id uuid.UUID) (*repositories.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, items, fetched_at FROM catalog_snapshots WHERE id = ?`, id.String())
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*repositories.Snapshot, error) {
	var id, raw, fetchedAt string
	err := row.Scan(&id, &raw, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cosmeticdomain.ErrCatalogNotLoaded
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap := &repositories.Snapshot{}
	if snap.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("snapshot id: %w", err)
	}
	if snap.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt); err != nil {
		return nil, fmt.Errorf("snapshot time: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Items); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
