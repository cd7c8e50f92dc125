package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/fnbrowser/pkg/app"
	"github.com/ghuser/fnbrowser/pkg/cache"
	"github.com/ghuser/fnbrowser/pkg/config"
	"github.com/ghuser/fnbrowser/pkg/database"
	"github.com/ghuser/fnbrowser/pkg/events"
	"github.com/ghuser/fnbrowser/pkg/logger"
	"github.com/ghuser/fnbrowser/pkg/telemetry"
	"github.com/ghuser/fnbrowser/pkg/workflows"
	cosmeticServices "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	"github.com/ghuser/fnbrowser/services/cosmetic/application/subscribers"
	cosmeticWorkflows "github.com/ghuser/fnbrowser/services/cosmetic/application/workflows"
	cosmeticEvents "github.com/ghuser/fnbrowser/services/cosmetic/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	tel, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer tel.Shutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Metrics:  tel.Catalog,
	}

	if cfg.TemporalEnabled {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient
	}

	cosmetics, err := cosmeticServices.New(appConfig)
	if err != nil {
		log.Error("failed to wire cosmetic services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer cosmetics.Close()

	if err := registerSubscribers(ctx, appConfig, cosmetics); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if appConfig.TemporalClient != nil {
		stop, err := startRefreshWorker(ctx, appConfig, cosmetics)
		if err != nil {
			log.Error("failed to start catalog refresh worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application, cosmetics *cosmeticServices.Services) error {
	topics, err := subscribers.Register(ctx, a.EventBus, map[string]subscribers.Handler{
		cosmeticEvents.TopicCatalogRefreshed: subscribers.CatalogRefreshed(cosmetics.Snapshots, cosmetics.Sets, a.Logger),
		cosmeticEvents.TopicSearchCommitted:  subscribers.SearchCommitted(cosmetics.Popular, a.Logger),
	}, a.Logger)
	if err != nil {
		return err
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// startRefreshWorker runs the Temporal worker for the catalog refresh workflow
// and makes sure its cron run exists. The returned func stops the worker.
func startRefreshWorker(ctx context.Context, a *app.Application, cosmetics *cosmeticServices.Services) (func(), error) {
	cfg := a.Config
	w := a.TemporalClient.NewWorker(cfg.TemporalTaskQueue, &cosmeticWorkflows.Module{
		Activities: &cosmeticWorkflows.Activities{
			Source:    cosmetics.Source,
			Snapshots: cosmetics.Snapshots,
		},
	})
	if err := w.Start(); err != nil {
		return nil, err
	}

	run, err := cosmeticWorkflows.ScheduleRefresh(ctx, a.TemporalClient.Client, cfg.TemporalTaskQueue, cfg.CatalogRefreshCron)
	if err != nil {
		w.Stop()
		return nil, err
	}
	a.Logger.Info("catalog refresh scheduled",
		"workflow_id", run.GetID(),
		"run_id", run.GetRunID(),
		"cron", cfg.CatalogRefreshCron,
	)
	return w.Stop, nil
}
