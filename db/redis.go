package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

const UsageKeyPrefix = "newstracker:usage"

// ConnectRedis opens the usage-tracking connection. An empty URL leaves
// Redis nil and disables tracking.
func ConnectRedis(ctx context.Context, redisURL string) error {
	if redisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("redis ping: %w", err)
	}

	Redis = client
	return nil
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}
