package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// HealthChecker is any dependency with a Ping (database pool, Redis, event bus).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// CatalogReporter exposes the in-memory catalog state for the health endpoint.
type CatalogReporter interface {
	CatalogHealth() (state string, items int)
}

// HealthChecks are the dependencies checked by HealthHandler. A nil checker is
// skipped. Catalog is informational: a loading or failed catalog never
// degrades the response.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
	Catalog  CatalogReporter
}

type healthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database,omitempty"`
	Redis        string `json:"redis,omitempty"`
	EventBus     string `json:"event_bus,omitempty"`
	Catalog      string `json:"catalog,omitempty"`
	CatalogItems int    `json:"catalog_items,omitempty"`
}

// HealthHandler pings every dependency in parallel within 2s and answers 503
// when any of them is unreachable.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		targets := []struct {
			checker HealthChecker
			result  *string
		}{
			{checks.Database, &resp.Database},
			{checks.Redis, &resp.Redis},
			{checks.EventBus, &resp.EventBus},
		}

		var g errgroup.Group
		for _, p := range targets {
			if p.checker == nil {
				continue
			}
			g.Go(func() error {
				*p.result = "ok"
				if err := p.checker.Ping(ctx); err != nil {
					*p.result = "unreachable"
					return err
				}
				return nil
			})
		}
		status := http.StatusOK
		if err := g.Wait(); err != nil {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		if checks.Catalog != nil {
			resp.Catalog, resp.CatalogItems = checks.Catalog.CatalogHealth()
		}
		JSON(w, status, resp)
	}
}
