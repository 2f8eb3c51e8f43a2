package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/brandonp20/board-game-rec/internal/domain"
	"github.com/brandonp20/board-game-rec/internal/engine"
)

const defaultTTL = 10 * time.Minute

// Cache stores computed result pages and search hits in redis. Entries are
// keyed on the full request, so there is nothing to invalidate when
// favorites or constraints change; TTL alone bounds staleness against
// catalog reloads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Fingerprint derives a stable cache key from a recommendation request.
// Constraints are normalized before fingerprinting, so equivalent requests
// collide on purpose.
func Fingerprint(req engine.Request) string {
	raw, err := json.Marshal(req)
	if err != nil {
		// Request structs are plain data; marshal cannot realistically
		// fail. Fall back to an uncacheable key rather than propagate.
		return fmt.Sprintf("rec:page:raw:%v", req)
	}
	return fmt.Sprintf("rec:page:%016x", xxhash.Sum64(raw))
}

func searchKey(query string) string {
	return "rec:search:" + strings.ToLower(query)
}

// GetPage fetches a cached result page. A miss is (nil, false, nil).
func (c *Cache) GetPage(ctx context.Context, key string) ([]domain.RecommendedGame, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var page []domain.RecommendedGame
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal %s: %w", key, err)
	}
	return page, true, nil
}

// SetPage stores a result page under the request fingerprint.
func (c *Cache) SetPage(ctx context.Context, key string, page []domain.RecommendedGame) error {
	val, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("cache marshal page: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// GetSearch fetches cached name-lookup results for a query.
func (c *Cache) GetSearch(ctx context.Context, query string) ([]domain.SearchResult, bool, error) {
	val, err := c.client.Get(ctx, searchKey(query)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get search %q: %w", query, err)
	}

	var results []domain.SearchResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, false, fmt.Errorf("cache unmarshal search %q: %w", query, err)
	}
	return results, true, nil
}

// SetSearch stores name-lookup results for a query.
func (c *Cache) SetSearch(ctx context.Context, query string, results []domain.SearchResult) error {
	val, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("cache marshal search: %w", err)
	}
	if err := c.client.Set(ctx, searchKey(query), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set search %q: %w", query, err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
