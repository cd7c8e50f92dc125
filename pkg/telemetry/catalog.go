package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/fnbrowser/catalog"

// Fetch outcomes recorded by CatalogMetrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeAborted = "aborted"
)

// CatalogMetrics records upstream catalog fetches. A nil *CatalogMetrics is a no-op.
type CatalogMetrics struct {
	fetches  metric.Int64Counter
	duration metric.Float64Histogram
	items    metric.Int64Gauge
}

// NewCatalogMetrics creates the catalog instruments on meter. Setup builds one
// on its own meter provider; tests may pass any metric.Meter.
func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	fetches, err := meter.Int64Counter("catalog_fetches_total",
		metric.WithDescription("Catalog fetches by outcome."))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("catalog_fetch_duration_seconds",
		metric.WithDescription("Wall-clock duration of catalog fetches."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.25, 0.5, 1, 2.5, 5, 10, 15, 30, 60))
	if err != nil {
		return nil, err
	}
	items, err := meter.Int64Gauge("catalog_items",
		metric.WithDescription("Cosmetics in the currently served collection."))
	if err != nil {
		return nil, err
	}
	return &CatalogMetrics{fetches: fetches, duration: duration, items: items}, nil
}

// RecordFetch records one fetch with its outcome.
func (m *CatalogMetrics) RecordFetch(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.fetches.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordItems records the size of the served collection.
func (m *CatalogMetrics) RecordItems(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.items.Record(ctx, int64(n))
}
