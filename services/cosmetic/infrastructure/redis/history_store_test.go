package redis

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/fnbrowser/pkg/cache"
	"github.com/ghuser/fnbrowser/pkg/config"
)

func TestHistoryStore_Key(t *testing.T) {
	s := NewHistoryStore(nil, RecentSearchesPrefix)
	require.Equal(t, "recent_searches:01ARZ3NDEKTSV4RRFFQ69G5FAV", s.key("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisStoresIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := cache.NewRedisClient(&config.Config{RedisURL: redisURL})
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	owner := ulid.Make().String()

	t.Run("HistoryStore", func(t *testing.T) {
		s := NewHistoryStore(rc, RecentSearchesPrefix)
		defer s.Clear(ctx, owner) //nolint:errcheck

		got, err := s.Recent(ctx, owner)
		require.NoError(t, err)
		require.Empty(t, got)

		require.NoError(t, s.Save(ctx, owner, []string{"peely", "raider", "floss"}))
		got, err = s.Recent(ctx, owner)
		require.NoError(t, err)
		require.Equal(t, []string{"peely", "raider", "floss"}, got)

		require.NoError(t, s.Save(ctx, owner, []string{"floss"}))
		got, err = s.Recent(ctx, owner)
		require.NoError(t, err)
		require.Equal(t, []string{"floss"}, got)

		require.NoError(t, s.Clear(ctx, owner))
		got, err = s.Recent(ctx, owner)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("ConcurrentUpdates", func(t *testing.T) {
		s := NewHistoryStore(rc, RecentlyViewedPrefix)
		defer s.Clear(ctx, owner) //nolint:errcheck

		var wg sync.WaitGroup
		for i := range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := fmt.Sprintf("c%02d", i)
				_, err := s.Update(ctx, owner, func(list []string) []string {
					return append([]string{id}, list...)
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.Recent(ctx, owner)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"c00", "c01", "c02", "c03"}, got)
	})

	t.Run("PopularSearches", func(t *testing.T) {
		p := NewPopularSearches(rc)
		defer rc.Client().Del(ctx, popularSearchesKey) //nolint:errcheck

		for _, q := range []string{"Peely", "peely ", "raider", "", "peely"} {
			require.NoError(t, p.Increment(ctx, q))
		}
		top, err := p.Top(ctx, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		require.Equal(t, "peely", top[0].Query)
		require.EqualValues(t, 3, top[0].Count)
	})
}
