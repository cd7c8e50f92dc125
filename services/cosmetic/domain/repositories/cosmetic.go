package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

// CosmeticSource is the remote catalog. The domain layer owns this interface;
// infrastructure implements it against the cosmetics API.
type CosmeticSource interface {
	// FetchAll returns the full catalog in API order.
	FetchAll(ctx context.Context) ([]models.Cosmetic, error)
	// FetchSet returns the members of the named set.
	FetchSet(ctx context.Context, name string) ([]models.Cosmetic, error)
}

// Snapshot is a persisted copy of one successful catalog fetch.
type Snapshot struct {
	ID        uuid.UUID
	Items     []models.Cosmetic
	FetchedAt time.Time
}

// SnapshotRepository stores catalog snapshots so a restart or a failed fetch
// can still serve the last known collection.
type SnapshotRepository interface {
	// Save persists items as the newest snapshot and publishes CatalogRefreshedEvent
	// in the same transaction.
	Save(ctx context.Context, items []models.Cosmetic, fetchedAt time.Time) (*Snapshot, error)

	// Latest returns the newest snapshot. Returns ErrCatalogNotLoaded if none exists.
	Latest(ctx context.Context) (*Snapshot, error)

	// Get returns a snapshot by ID. Returns ErrCatalogNotLoaded if it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*Snapshot, error)
}
