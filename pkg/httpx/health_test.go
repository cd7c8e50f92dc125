package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/fnbrowser/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type stubCatalog struct {
	state string
	items int
}

func (s stubCatalog) CatalogHealth() (string, int) { return s.state, s.items }

var down = &stubChecker{err: errors.New("conn refused")}

func healthy() httpx.HealthChecks {
	return httpx.HealthChecks{Database: &stubChecker{}, Redis: &stubChecker{}, EventBus: &stubChecker{}}
}

func serveHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*httpx.HealthChecks)
		code   int
		want   map[string]any
	}{
		{"all healthy", func(*httpx.HealthChecks) {}, http.StatusOK,
			map[string]any{"status": "ok", "database": "ok", "redis": "ok", "event_bus": "ok"}},
		{"database down", func(c *httpx.HealthChecks) { c.Database = down }, http.StatusServiceUnavailable,
			map[string]any{"status": "degraded", "database": "unreachable", "redis": "ok"}},
		{"redis down", func(c *httpx.HealthChecks) { c.Redis = down }, http.StatusServiceUnavailable,
			map[string]any{"status": "degraded", "redis": "unreachable", "event_bus": "ok"}},
		{"all down", func(c *httpx.HealthChecks) { c.Database, c.Redis, c.EventBus = down, down, down }, http.StatusServiceUnavailable,
			map[string]any{"database": "unreachable", "redis": "unreachable", "event_bus": "unreachable"}},
		{"catalog reported", func(c *httpx.HealthChecks) { c.Catalog = stubCatalog{state: "ready", items: 4821} }, http.StatusOK,
			map[string]any{"catalog": "ready", "catalog_items": float64(4821)}},
		{"loading catalog stays healthy", func(c *httpx.HealthChecks) { c.Catalog = stubCatalog{state: "loading"} }, http.StatusOK,
			map[string]any{"status": "ok", "catalog": "loading"}},
		{"failed catalog stays healthy", func(c *httpx.HealthChecks) { c.Catalog = stubCatalog{state: "failed"} }, http.StatusOK,
			map[string]any{"status": "ok", "catalog": "failed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := healthy()
			tt.mutate(&checks)
			code, resp := serveHealth(t, checks)
			if code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, code)
			}
			for k, v := range tt.want {
				if resp[k] != v {
					t.Errorf("%s: got %v, want %v", k, resp[k], v)
				}
			}
		})
	}
}

func TestHealthHandler_SkipsMissingCheckers(t *testing.T) {
	code, resp := serveHealth(t, httpx.HealthChecks{Database: &stubChecker{}})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if _, ok := resp["redis"]; ok {
		t.Errorf("unconfigured redis must not be reported: %+v", resp)
	}
}
