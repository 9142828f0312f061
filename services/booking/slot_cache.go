package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const slotCachePrefix = "bookedSlots:"

// SlotCache caches the booked time labels per date.
type SlotCache interface {
	Get(ctx context.Context, date string) ([]string, bool, error)
	Set(ctx context.Context, date string, times []string) error
	Invalidate(ctx context.Context, date string) error
}

// RedisSlotCache stores booked slots as JSON arrays with a TTL.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisSlotCache{client: client, ttl: ttl}
}

func (c *RedisSlotCache) Get(ctx context.Context, date string) ([]string, bool, error) {
	data, err := c.client.Get(ctx, slotCachePrefix+date).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read booked slots: %w", err)
	}
	var times []string
	if err := json.Unmarshal(data, &times); err != nil {
		return nil, false, fmt.Errorf("failed to decode booked slots: %w", err)
	}
	return times, true, nil
}

func (c *RedisSlotCache) Set(ctx context.Context, date string, times []string) error {
	data, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("failed to encode booked slots: %w", err)
	}
	if err := c.client.Set(ctx, slotCachePrefix+date, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache booked slots: %w", err)
	}
	return nil
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, date string) error {
	if err := c.client.Del(ctx, slotCachePrefix+date).Err(); err != nil {
		return fmt.Errorf("failed to invalidate booked slots: %w", err)
	}
	return nil
}

type noopSlotCache struct{}

func (noopSlotCache) Get(context.Context, string) ([]string, bool, error) { return nil, false, nil }
func (noopSlotCache) Set(context.Context, string, []string) error { return nil }
func (noopSlotCache) Invalidate(context.Context, string) error { return nil }
