package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodgram-backend/internal/logging"
	"foodgram-backend/internal/utils"

	"github.com/go-redis/redis/v8"
)

// Cache stores JSON-encoded reference data. A Cache built without a reachable
// Redis behaves as an always-miss cache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache() *RedisCache {
	if url := utils.GetConfig("REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url)
		if err == nil {
			return connect(redis.NewClient(opt))
		}
		logging.Warn().Err(err).Msg("invalid REDIS_URL")
	}

	host := utils.GetConfig("REDIS_HOST")
	if host == "" {
		logging.Info().Msg("redis not configured, cache disabled")
		return &RedisCache{}
	}
	port := utils.GetConfig("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	return connect(redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: utils.GetConfig("REDIS_PASSWORD"),
	}))
}

func connect(client *redis.Client) *RedisCache {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn().Err(err).Msg("redis connection failed, cache disabled")
		_ = client.Close()
		return &RedisCache{}
	}
	return &RedisCache{client: client}
}

func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Enabled() bool {
	return r.client != nil
}

func (r *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if r.client == nil || len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
