package audition

import (
	"context"
	"encoding/json"
	"time"

	"dreamhi/models"

	"github.com/go-redis/redis/v8"
)

const periodCachePrefix = "audition:period:"

// PeriodCache stores resolved book periods by process id.
type PeriodCache interface {
	Get(ctx context.Context, processID string) (*models.BookPeriod, error)
	Set(ctx context.Context, processID string, period models.BookPeriod) error
	Invalidate(ctx context.Context, processID string) error
}

type RedisPeriodCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPeriodCache(client *redis.Client, ttl time.Duration) *RedisPeriodCache {
	return &RedisPeriodCache{client: client, ttl: ttl}
}

// Get returns nil without error on a cache miss.
func (c *RedisPeriodCache) Get(ctx context.Context, processID string) (*models.BookPeriod, error) {
	data, err := c.client.Get(ctx, periodCachePrefix+processID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var period models.BookPeriod
	if err := json.Unmarshal([]byte(data), &period); err != nil {
		return nil, err
	}
	return &period, nil
}

func (c *RedisPeriodCache) Set(ctx context.Context, processID string, period models.BookPeriod) error {
	b, err := json.Marshal(period)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, periodCachePrefix+processID, b, c.ttl).Err()
}

func (c *RedisPeriodCache) Invalidate(ctx context.Context, processID string) error {
	return c.client.Del(ctx, periodCachePrefix+processID).Err()
}
