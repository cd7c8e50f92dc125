package repositories

import (
	"context"
	"time"
)

// HistoryStore persists one owner's most-recent-first list, e.g. recent
// searches or recently viewed ids. Ordering and capping rules live in the
// domain services; the store saves what it is given.
type HistoryStore interface {
	Recent(ctx context.Context, owner string) ([]string, error)
	// Update replaces the owner's list with fn(current) atomically and returns
	// the saved list. fn may run more than once when a concurrent write wins.
	Update(ctx context.Context, owner string, fn func([]string) []string) ([]string, error)
	Clear(ctx context.Context, owner string) error
}

// SearchCount is one entry of the popular searches ranking.
type SearchCount struct {
	Query string
	Count int64
}

// PopularSearches ranks committed searches across all visitors.
type PopularSearches interface {
	Increment(ctx context.Context, query string) error
	Top(ctx context.Context, n int) ([]SearchCount, error)
}

// SetCache caches set lookups. A miss is reported as ok=false with a nil error.
type SetCache interface {
	Get(ctx context.Context, name string) (items []byte, ok bool, err error)
	Set(ctx context.Context, name string, items []byte, ttl time.Duration) error
}
