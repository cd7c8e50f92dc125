package services

import (
	"context"
	"fmt"

	"github.com/ghuser/fnbrowser/pkg/app"
	"github.com/ghuser/fnbrowser/pkg/cache"
	"github.com/ghuser/fnbrowser/pkg/logger"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
	"github.com/ghuser/fnbrowser/services/cosmetic/infrastructure/fortniteapi"
	"github.com/ghuser/fnbrowser/services/cosmetic/infrastructure/persistence/postgres"
	redisstore "github.com/ghuser/fnbrowser/services/cosmetic/infrastructure/redis"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog *CatalogService
	Query   *QueryService
	Sets    *SetService
	Search  *SearchService
	Viewed  *ViewedService

	Source    repositories.CosmeticSource
	Snapshots repositories.SnapshotRepository
	Popular   repositories.PopularSearches
	Log       logger.Logger
	PageSize  int
}

// New wires all cosmetic application services with infrastructure from the
// Application container. Call Start to load the catalog and Close on shutdown.
func New(a *app.Application) (*Services, error) {
	cfg := a.Config
	facets, err := models.DefaultFacetCatalog()
	if err != nil {
		return nil, fmt.Errorf("load facets: %w", err)
	}

	source := fortniteapi.New(fortniteapi.Config{
		BaseURL:        cfg.CosmeticsAPIURL,
		Language:       cfg.CosmeticsLanguage,
		RatePerSecond:  cfg.CosmeticsRatePerSecond,
		RequestTimeout: cfg.CosmeticsRequestTimeout,
	})
	snapshots := postgres.NewSnapshotRepository(a.Db, a.EventBus)
	popular := redisstore.NewPopularSearches(a.Redis)

	catalog := NewCatalogService(source, snapshots, a.Logger, CatalogOptions{
		AdvisoryAfter:  cfg.FetchAdvisoryAfter,
		RetryCountdown: cfg.RetryCountdown,
		Metrics:        a.Metrics,
	})
	query := NewQueryService(catalog, facets)

	return &Services{
		Catalog: catalog,
		Query:   query,
		Sets:    NewSetService(source, cache.NewSetCache(a.Redis), cfg.SetCacheTTL, a.Logger),
		Search: NewSearchService(
			redisstore.NewHistoryStore(a.Redis, redisstore.RecentSearchesPrefix),
			popular,
			a.EventBus,
			a.Logger,
			cfg.SearchDebounce,
		),
		Viewed:    NewViewedService(redisstore.NewHistoryStore(a.Redis, redisstore.RecentlyViewedPrefix), query),
		Source:    source,
		Snapshots: snapshots,
		Popular:   popular,
		Log:       a.Logger,
		PageSize:  cfg.PageSize,
	}, nil
}

// Start serves the latest persisted snapshot, if any, and kicks off a fresh
// fetch in the background.
func (s *Services) Start(ctx context.Context) {
	if err := s.Catalog.Restore(ctx); err != nil {
		s.Log.WarnContext(ctx, "no catalog snapshot restored", "error", err)
	}
	s.Catalog.Refresh()
}

// Close flushes pending search commits and aborts in-flight fetches.
func (s *Services) Close() {
	s.Search.Close()
	s.Catalog.Close()
}
