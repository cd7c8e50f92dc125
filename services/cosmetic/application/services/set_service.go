package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ghuser/fnbrowser/pkg/logger"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

// SetService looks up the members of a named set. Lookups never fail from the
// caller's point of view: any error degrades to an empty result and is logged.
type SetService struct {
	source repositories.CosmeticSource
	cache  repositories.SetCache // nil disables caching
	ttl    time.Duration
	log    logger.Logger
	group  singleflight.Group
}

// NewSetService returns a SetService. cache may be nil.
func NewSetService(source repositories.CosmeticSource, cache repositories.SetCache, ttl time.Duration, log logger.Logger) *SetService {
	return &SetService{source: source, cache: cache, ttl: ttl, log: log}
}

// Items returns the members of the named set, or an empty slice.
func (s *SetService) Items(ctx context.Context, name string) []models.Cosmetic {
	name = strings.TrimSpace(name)
	if name == "" {
		return []models.Cosmetic{}
	}

	if items, ok := s.cached(ctx, name); ok {
		return items
	}

	// Concurrent lookups of the same set share one upstream call.
	v, err, _ := s.group.Do(strings.ToLower(name), func() (any, error) {
		items, err := s.source.FetchSet(context.WithoutCancel(ctx), name)
		if err != nil {
			return nil, err
		}
		s.store(ctx, name, items)
		return items, nil
	})
	if err != nil {
		s.log.WarnContext(ctx, "set lookup failed", "set", name, "error", err)
		return []models.Cosmetic{}
	}
	items, _ := v.([]models.Cosmetic)
	if items == nil {
		return []models.Cosmetic{}
	}
	return items
}

// Warm caches every set present in items, grouped by set name. It returns the
// number of sets written.
func (s *SetService) Warm(ctx context.Context, items []models.Cosmetic) int {
	if s.cache == nil {
		return 0
	}
	groups := make(map[string][]models.Cosmetic)
	names := make(map[string]string)
	for _, item := range items {
		set := item.SetName()
		if set == "" {
			continue
		}
		key := strings.ToLower(set)
		if _, ok := names[key]; !ok {
			names[key] = set
		}
		groups[key] = append(groups[key], item)
	}

	warmed := 0
	for key, members := range groups {
		if s.store(ctx, names[key], members) {
			warmed++
		}
	}
	return warmed
}

func (s *SetService) cached(ctx context.Context, name string) ([]models.Cosmetic, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, name)
	if err != nil {
		s.log.WarnContext(ctx, "set cache read failed", "set", name, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var items []models.Cosmetic
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.WarnContext(ctx, "set cache entry unreadable", "set", name, "error", err)
		return nil, false
	}
	return items, true
}

func (s *SetService) store(ctx context.Context, name string, items []models.Cosmetic) bool {
	if s.cache == nil {
		return false
	}
	if items == nil {
		items = []models.Cosmetic{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return false
	}
	if err := s.cache.Set(ctx, name, raw, s.ttl); err != nil {
		s.log.WarnContext(ctx, "set cache write failed", "set", name, "error", err)
		return false
	}
	return true
}
