package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "settings:"

// Cache keeps raw setting values in Redis for a fixed TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get returns the cached value and whether it was present.
func (c *Cache) Get(ctx context.Context, key string) (types.JSONText, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return types.JSONText(val), true, nil
}

// Set overwrites the cached value. Writers use it after a successful save.
func (c *Cache) Set(ctx context.Context, key string, value types.JSONText) error {
	return c.rdb.Set(ctx, cacheKeyPrefix+key, []byte(value), c.ttl).Err()
}

// Fill caches a value read from the database unless the key is already set,
// so a slow reader cannot replace a value a writer stored meanwhile.
func (c *Cache) Fill(ctx context.Context, key string, value types.JSONText) error {
	return c.rdb.SetNX(ctx, cacheKeyPrefix+key, []byte(value), c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, cacheKeyPrefix+key).Err()
}
