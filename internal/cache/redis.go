package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "pagecache:"
const keySet = "pagecache-keys"

// RedisCache implements PageCache on a shared Redis instance so every worker
// process serves the same cached pages.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a RedisCache over an existing client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached entry for key if present
func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, err
	}
	return &entry, true, nil
}

// Set stores entry under key for ttl. The key is also tracked in a set so
// Clear can drop every page without a prefix scan.
func (c *RedisCache) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return err
	}
	return c.client.SAdd(ctx, keySet, key).Err()
}

// Clear drops every tracked page
func (c *RedisCache) Clear(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, keySet).Result()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
			return err
		}
	}
	return c.client.Del(ctx, keySet).Err()
}
