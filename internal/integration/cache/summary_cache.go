// Package cache implements the summary cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

const scanBatchSize = 100

// redisSummaryCache implements adapter.SummaryCache with one JSON value per date.
type redisSummaryCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSummaryCache creates a Redis backed summary cache.
// A zero ttl keeps entries until the next invalidation.
func NewRedisSummaryCache(client *redis.Client, prefix string, ttl time.Duration) adapter.SummaryCache {
	return &redisSummaryCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *redisSummaryCache) key(date valueobject.CalendarDate) string {
	return c.prefix + date.String()
}

// Get returns the cached summaries for date.
func (c *redisSummaryCache) Get(ctx context.Context, date valueobject.CalendarDate) ([]*entity.ClientSummary, bool, error) {
	data, err := c.client.Get(ctx, c.key(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read summary cache: %w", err)
	}

	var summaries []*entity.ClientSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		// A stale layout is treated as a miss and overwritten on the next Set.
		slog.Warn("Discarding undecodable summary cache entry", "date", date.String(), "error", err)
		return nil, false, nil
	}
	return summaries, true, nil
}

// Set stores the summaries for date.
func (c *redisSummaryCache) Set(ctx context.Context, date valueobject.CalendarDate, summaries []*entity.ClientSummary) error {
	data, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to encode summaries: %w", err)
	}
	if err := c.client.Set(ctx, c.key(date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// InvalidateAll drops every key under the cache prefix.
func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan summary cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to invalidate summary cache: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// noopSummaryCache never stores anything. Used when Redis is not configured.
type noopSummaryCache struct{}

// NewNoopSummaryCache creates a cache that always misses.
func NewNoopSummaryCache() adapter.SummaryCache {
	return noopSummaryCache{}
}

func (noopSummaryCache) Get(context.Context, valueobject.CalendarDate) ([]*entity.ClientSummary, bool, error) {
	return nil, false, nil
}

func (noopSummaryCache) Set(context.Context, valueobject.CalendarDate, []*entity.ClientSummary) error {
	return nil
}

func (noopSummaryCache) InvalidateAll(context.Context) error {
	return nil
}
