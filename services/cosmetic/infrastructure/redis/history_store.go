// Package redis holds the Redis-backed per-visitor stores: recent searches,
// recently viewed cosmetics and the popular searches ranking.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghuser/fnbrowser/pkg/cache"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
)

const (
	RecentSearchesPrefix = "recent_searches"
	RecentlyViewedPrefix = "recently_viewed"

	popularSearchesKey = "popular_searches"
	historyTTL         = 30 * 24 * time.Hour
	updateAttempts     = 5
)

// HistoryStore keeps one Redis list per owner under "{prefix}:{owner}".
type HistoryStore struct {
	client *cache.RedisClient
	prefix string
}

var _ repositories.HistoryStore = (*HistoryStore)(nil)

// NewHistoryStore returns a HistoryStore whose keys start with prefix.
func NewHistoryStore(client *cache.RedisClient, prefix string) *HistoryStore {
	return &HistoryStore{client: client, prefix: prefix}
}

// Recent returns the owner's list, most recent first. A missing key is an empty list.
func (s *HistoryStore) Recent(ctx context.Context, owner string) ([]string, error) {
	list, err := s.client.Client().LRange(ctx, s.key(owner), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history: read %s: %w", s.prefix, err)
	}
	return list, nil
}

// Save replaces the owner's list atomically and refreshes its TTL.
func (s *HistoryStore) Save(ctx context.Context, owner string, list []string) error {
	key := s.key(owner)
	_, err := s.client.Client().TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		replaceList(ctx, pipe, key, list)
		return nil
	})
	if err != nil {
		return fmt.Errorf("history: save %s: %w", s.prefix, err)
	}
	return nil
}

// Update applies fn to the owner's list inside a WATCH transaction, retrying
// when another client modified the key in between.
func (s *HistoryStore) Update(ctx context.Context, owner string, fn func([]string) []string) ([]string, error) {
	key := s.key(owner)
	var out []string
	txf := func(tx *goredis.Tx) error {
		list, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		out = fn(list)
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			replaceList(ctx, pipe, key, out)
			return nil
		})
		return err
	}

	for range updateAttempts {
		err := s.client.Client().Watch(ctx, txf, key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("history: update %s: %w", s.prefix, err)
		}
		if out == nil {
			out = []string{}
		}
		return out, nil
	}
	return nil, fmt.Errorf("history: update %s: %w", s.prefix, goredis.TxFailedErr)
}

// Clear removes the owner's list.
func (s *HistoryStore) Clear(ctx context.Context, owner string) error {
	if err := s.client.Client().Del(ctx, s.key(owner)).Err(); err != nil {
		return fmt.Errorf("history: clear %s: %w", s.prefix, err)
	}
	return nil
}

func (s *HistoryStore) key(owner string) string {
	return s.prefix + ":" + owner
}

func replaceList(ctx context.Context, pipe goredis.Pipeliner, key string, list []string) {
	pipe.Del(ctx, key)
	if len(list) == 0 {
		return
	}
	vals := make([]any, len(list))
	for i, v := range list {
		vals[i] = v
	}
	pipe.RPush(ctx, key, vals...)
	pipe.Expire(ctx, key, historyTTL)
}

// PopularSearches ranks committed searches in a sorted set.
type PopularSearches struct {
	client *cache.RedisClient
}

var _ repositories.PopularSearches = (*PopularSearches)(nil)

func NewPopularSearches(client *cache.RedisClient) *PopularSearches {
	return &PopularSearches{client: client}
}

// Increment bumps the score of the lower-cased, trimmed query.
func (p *PopularSearches) Increment(ctx context.Context, query string) error {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if err := p.client.Client().ZIncrBy(ctx, popularSearchesKey, 1, query).Err(); err != nil {
		return fmt.Errorf("popular: increment: %w", err)
	}
	return nil
}

// Top returns the n highest-ranked searches.
func (p *PopularSearches) Top(ctx context.Context, n int) ([]repositories.SearchCount, error) {
	if n <= 0 {
		return []repositories.SearchCount{}, nil
	}
	zs, err := p.client.Client().ZRevRangeWithScores(ctx, popularSearchesKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("popular: top: %w", err)
	}
	out := make([]repositories.SearchCount, 0, len(zs))
	for _, z := range zs {
		q, _ := z.Member.(string)
		out = append(out, repositories.SearchCount{Query: q, Count: int64(z.Score)})
	}
	return out, nil
}
