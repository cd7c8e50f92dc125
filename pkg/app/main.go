package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/fnbrowser/pkg/cache"
	"github.com/ghuser/fnbrowser/pkg/config"
	"github.com/ghuser/fnbrowser/pkg/database"
	"github.com/ghuser/fnbrowser/pkg/events"
	"github.com/ghuser/fnbrowser/pkg/logger"
	"github.com/ghuser/fnbrowser/pkg/telemetry"
	"github.com/ghuser/fnbrowser/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's route and subscriber registration during startup.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "catalog refreshed", "items", n)
//	app.Logger.ErrorContext(ctx, "failed to save snapshot", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil unless TEMPORAL_ENABLED
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
	Metrics        *telemetry.CatalogMetrics // nil disables catalog metrics
}
