package cache

import (
	"context"
	"fmt"
	"time"

	"quiz-forge/internal/config"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 3 * time.Second

// NewRedisClient connects to the configured Redis server and pings it.
// An empty address means caching is disabled and is reported as an error
// so callers can fall back to running without a cache.
func NewRedisClient(redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis configuration is missing or address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}
	return client, nil
}
