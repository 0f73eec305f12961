package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/port"
)

const depthKey = "depth"

// RedisCache stores the latest aggregated depth snapshot under a single key.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ port.Cache = (*RedisCache)(nil)

func NewRedisCache(addr string, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
	}
}

func (c *RedisCache) SetDepth(ctx context.Context, snap *domain.DepthSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, depthKey, b, c.ttl).Err()
}

func (c *RedisCache) GetDepth(ctx context.Context) (*domain.DepthSnapshot, error) {
	b, err := c.client.Get(ctx, depthKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap domain.DepthSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, depthKey).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
