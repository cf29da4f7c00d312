package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/port"
)

var _ port.Cache = (*RedisCache)(nil)

const keyPrefix = "bids:"

// RedisCache stores merged bid books in Redis with a TTL, so stale books age
// out even when nobody invalidates them explicitly.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

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

func key(source, dest domain.Asset) string {
	return keyPrefix + string(source) + ":" + string(dest)
}

func (c *RedisCache) SetBids(ctx context.Context, source, dest domain.Asset, bids []domain.Bid) error {
	b, err := json.Marshal(bids)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(source, dest), b, c.ttl).Err()
}

func (c *RedisCache) GetBids(ctx context.Context, source, dest domain.Asset) ([]domain.Bid, error) {
	b, err := c.client.Get(ctx, key(source, dest)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var bids []domain.Bid
	if err := json.Unmarshal(b, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

func (c *RedisCache) Invalidate(ctx context.Context, source, dest domain.Asset) error {
	return c.client.Del(ctx, key(source, dest)).Err()
}

func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
