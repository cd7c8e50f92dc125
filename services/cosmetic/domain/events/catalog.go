package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicCatalogRefreshed is the Watermill topic published after a catalog snapshot is saved.
	TopicCatalogRefreshed = "catalog.refreshed"
	// TopicSearchCommitted is the Watermill topic published when a debounced search is committed.
	TopicSearchCommitted = "search.committed"
)

// CatalogRefreshedEvent is published in the same transaction as the snapshot it announces.
// Consumers load the snapshot by SnapshotID.
type CatalogRefreshedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	SnapshotID uuid.UUID `json:"snapshot_id"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SearchCommittedEvent is published once a visitor's search survives the debounce window.
type SearchCommittedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	VisitorID  string    `json:"visitor_id"`
	Query      string    `json:"query"`
	OccurredAt time.Time `json:"occurred_at"`
}
