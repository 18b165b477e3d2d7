package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type statsCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewStatsCache creates a Redis-backed dashboard stats cache.
func NewStatsCache(client *redislib.Client, ttl time.Duration) repository.StatsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &statsCache{
		client: client,
		prefix: "stats:",
		ttl:    ttl,
	}
}

func (c *statsCache) Get(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	result, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrStatsNotCached
		}
		return nil, err
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal([]byte(result), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *statsCache) Set(ctx context.Context, userID string, stats *domain.DashboardStats) error {
	if stats == nil || userID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), payload, c.ttl).Err()
}

func (c *statsCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *statsCache) key(userID string) string {
	return fmt.Sprintf("%s%s", c.prefix, userID)
}
