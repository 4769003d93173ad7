// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"roomapp/config"

	"github.com/go-redis/redis/v8"
)

// NewEventCacheClient initializes the Redis client used to deduplicate
// payment webhook events.
func NewEventCacheClient(cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisEventDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (events): %w", err)
	}
	return client, nil
}
