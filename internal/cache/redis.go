// internal/cache/redis.go
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/stocklane/catalog-admin/internal/config"
)

// DefaultTTL is the TTL applied to cached list and detail payloads.
const DefaultTTL = time.Hour

// Store is the cache gateway consumed by the services. It is fail-open:
// implementations must never surface a cache failure to the caller. A miss
// and an error look the same, and writes are best-effort.
type Store interface {
	Get(ctx context.Context, key Key) (string, bool)
	Set(ctx context.Context, key Key, value string, ttl time.Duration)
	Delete(ctx context.Context, keys ...Key)
}

// RedisStore implements Store on a Redis connection.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logrus.Info("Redis connection established successfully")

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, key Key) (string, bool) {
	value, err := s.client.Get(ctx, string(key)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed, falling through to storage")
		return "", false
	}
	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key Key, value string, ttl time.Duration) {
	if err := s.client.Set(ctx, string(key), value, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (s *RedisStore) Delete(ctx context.Context, keys ...Key) {
	if len(keys) == 0 {
		return
	}
	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = string(k)
	}
	if err := s.client.Del(ctx, raw...).Err(); err != nil {
		logrus.WithError(err).WithField("keys", raw).Warn("Cache invalidation failed")
	}
}
