package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fnbrowser/pkg/database"
	"github.com/ghuser/fnbrowser/pkg/events"
	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	domainevents "github.com/ghuser/fnbrowser/services/cosmetic/domain/events"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
	"github.com/ghuser/fnbrowser/services/cosmetic/infrastructure/persistence/postgres/db"
)

// snapshotsKept is how many snapshots survive a save; older ones are pruned.
const snapshotsKept = 5

// SnapshotRepository implements repositories.SnapshotRepository against PostgreSQL.
type SnapshotRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSnapshotRepository returns a SnapshotRepository backed by the given pool
// and event bus. The bus is used to publish CatalogRefreshedEvents after a
// successful save; a nil bus disables publishing.
func NewSnapshotRepository(database *database.Database, bus *events.EventBus) *SnapshotRepository {
	return &SnapshotRepository{db: database, bus: bus}
}

// Save persists items as a new snapshot, prunes old ones and publishes a
// CatalogRefreshedEvent within the same transaction.
func (r *SnapshotRepository) Save(ctx context.Context, items []models.Cosmetic, fetchedAt time.Time) (*repositories.Snapshot, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	snap := &repositories.Snapshot{
		ID:        uuid.New(),
		Items:     items,
		FetchedAt: fetchedAt.UTC(),
	}

	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertSnapshot(ctx, db.InsertSnapshotParams{
			ID:        snap.ID,
			ItemCount: int32(len(items)),
			Items:     payload,
			FetchedAt: snap.FetchedAt,
		}); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		if err := q.PruneSnapshots(ctx, snapshotsKept); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}

		if r.bus != nil {
			if err := r.publishRefreshed(tx, snap); err != nil {
				return fmt.Errorf("publish catalog refreshed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Latest returns the newest snapshot. Returns ErrCatalogNotLoaded if there is none.
func (r *SnapshotRepository) Latest(ctx context.Context) (*repositories.Snapshot, error) {
	row, err := db.New(r.db.DB()).GetLatestSnapshot(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cosmeticdomain.ErrCatalogNotLoaded
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return rowToSnapshot(row)
}

// Get returns the snapshot with the given ID. Returns ErrCatalogNotLoaded if it does not exist.
func (r *SnapshotRepository) Get(ctx context.Context, id uuid.UUID) (*repositories.Snapshot, error) {
	row, err := db.New(r.db.DB()).GetSnapshotByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cosmeticdomain.ErrCatalogNotLoaded
		}
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return rowToSnapshot(row)
}

func (r *SnapshotRepository) publishRefreshed(tx *sql.Tx, snap *repositories.Snapshot) error {
	event := domainevents.CatalogRefreshedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SnapshotID: snap.ID,
		ItemCount:  len(snap.Items),
		OccurredAt: snap.FetchedAt,
	}
	msg, err := events.NewJSONMessage(event)
	if err != nil {
		return err
	}
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", strconv.Itoa(event.Version))
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicCatalogRefreshed, msg)
}

// rowToSnapshot maps a db.CosmeticCatalogSnapshot to a repositories.Snapshot.
func rowToSnapshot(row db.CosmeticCatalogSnapshot) (*repositories.Snapshot, error) {
	var items []models.Cosmetic
	if err := json.Unmarshal(row.Items, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", row.ID, err)
	}
	return &repositories.Snapshot{
		ID:        row.ID,
		Items:     items,
		FetchedAt: row.FetchedAt,
	}, nil
}
