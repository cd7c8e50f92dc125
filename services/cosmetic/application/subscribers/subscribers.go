// Package subscribers holds the worker's handlers for cosmetic domain events.
// Handlers must be idempotent: EventBus retries up to 3x on failure and the
// forwarder delivers at least once.
package subscribers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/fnbrowser/pkg/events"
	"github.com/ghuser/fnbrowser/pkg/logger"
	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	cosmeticevents "github.com/ghuser/fnbrowser/services/cosmetic/domain/events"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

// Handler is the EventBus subscription callback.
type Handler = func(context.Context, *message.Message) error

// SetWarmer caches set membership for a collection.
type SetWarmer interface {
	Warm(ctx context.Context, items []models.Cosmetic) int
}

// Subscriber is the part of the EventBus the worker needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// CatalogRefreshed loads the announced snapshot and warms the set cache from it.
// A snapshot that no longer exists is skipped rather than retried.
func CatalogRefreshed(snapshots repositories.SnapshotRepository, sets SetWarmer, log logger.Logger) Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[cosmeticevents.CatalogRefreshedEvent](msg)
		if err != nil {
			return err
		}

		snap, err := snapshots.Get(ctx, evt.SnapshotID)
		if errors.Is(err, cosmeticdomain.ErrCatalogNotLoaded) {
			log.WarnContext(ctx, "refreshed snapshot missing, skipping set warm",
				"snapshot_id", evt.SnapshotID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load snapshot %s: %w", evt.SnapshotID, err)
		}

		warmed := sets.Warm(ctx, snap.Items)
		log.InfoContext(ctx, "set cache warmed",
			"snapshot_id", evt.SnapshotID,
			"items", len(snap.Items),
			"sets", warmed,
		)
		return nil
	}
}

// SearchCommitted bumps the popular-search ranking. A redelivered event counts
// again; the ranking is approximate.
func SearchCommitted(popular repositories.PopularSearches, log logger.Logger) Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.DecodeJSON[cosmeticevents.SearchCommittedEvent](msg)
		if err != nil {
			return err
		}
		if err := popular.Increment(ctx, evt.Query); err != nil {
			return err
		}
		log.DebugContext(ctx, "popular search counted", "query", evt.Query)
		return nil
	}
}

// Register subscribes every cosmetic handler and drains subscriber errors in
// the background so the channels never block. It returns the subscribed topics.
func Register(ctx context.Context, bus Subscriber, handlers map[string]Handler, log logger.Logger) ([]string, error) {
	topics := make([]string, 0, len(handlers))
	for topic, h := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, h)
		if err != nil {
			return topics, fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go func() {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
		topics = append(topics, topic)
	}
	return topics, nil
}
