package isbn

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "isbn:"

type Cache interface {
	Get(ctx context.Context, isbn string) (*Metadata, bool, error)
	Set(ctx context.Context, isbn string, md *Metadata) error
}

// RedisCache keeps found metadata with a TTL. Misses are not cached.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, isbn string) (*Metadata, bool, error) {
	data, err := r.client.Get(ctx, cacheKeyPrefix+isbn).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, false, err
	}
	return &md, true, nil
}

func (r *RedisCache) Set(ctx context.Context, isbn string, md *Metadata) error {
	data, err := json.Marshal(md)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cacheKeyPrefix+isbn, data, r.ttl).Err()
}
