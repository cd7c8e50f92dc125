package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ghuser/fnbrowser/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "test-service",
		ServiceVersion: "test",
		Environment:    "testing",
		OtelEndpoint:   "", // disabled
	}
}

func setup(t *testing.T) *Telemetry {
	t.Helper()
	tel, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })
	return tel
}

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	return rr.Body.String()
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	tel, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tel.Catalog == nil {
		t.Fatal("expected catalog metrics")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestMetricsHandler_ServesPrometheusFormat(t *testing.T) {
	tel := setup(t)

	rr := httptest.NewRecorder()
	tel.MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Error("expected runtime collectors on the registry")
	}
}

func TestCatalogMetrics_ExportedPerSetup(t *testing.T) {
	// Each Setup scrapes its own registry, so earlier setups in the same
	// process do not hide the catalog series.
	for i := range 2 {
		t.Run(fmt.Sprintf("setup %d", i), func(t *testing.T) {
			tel := setup(t)
			tel.Catalog.RecordFetch(context.Background(), OutcomeSuccess, 1500*time.Millisecond)
			tel.Catalog.RecordItems(context.Background(), 42)

			body := scrape(t, tel.MetricsHandler())
			for _, name := range []string{"catalog_fetches_total", "catalog_fetch_duration_seconds", "catalog_items"} {
				if !strings.Contains(body, name) {
					t.Errorf("expected %s in /metrics output", name)
				}
			}
			if !strings.Contains(body, `outcome="success"`) {
				t.Error("expected outcome label on fetch series")
			}
		})
	}
}

func TestNewCatalogMetrics_AnyMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewCatalogMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("new catalog metrics: %v", err)
	}
	m.RecordFetch(context.Background(), OutcomeAborted, time.Second)
}

func TestCatalogMetrics_NilIsNoop(t *testing.T) {
	var m *CatalogMetrics
	m.RecordFetch(context.Background(), OutcomeFailure, time.Second)
	m.RecordItems(context.Background(), 1)
}

func TestDropCanceled(t *testing.T) {
	event := &sentry.Event{Message: "boom"}
	tests := []struct {
		name string
		err  error
		kept bool
	}{
		{"upstream failure", errors.New("cosmetics api failure"), true},
		{"superseded fetch", fmt.Errorf("fetch catalog: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dropCanceled(event, &sentry.EventHint{OriginalException: tt.err})
			if (got != nil) != tt.kept {
				t.Fatalf("kept = %v, want %v", got != nil, tt.kept)
			}
		})
	}
	if dropCanceled(event, nil) == nil {
		t.Error("events without a hint are kept")
	}
}

func TestCaptureError_WithoutSentryIsNoop(t *testing.T) {
	CaptureError(context.Background(), "catalog", errors.New("boom"))
	CaptureError(context.Background(), "catalog", nil)
}
