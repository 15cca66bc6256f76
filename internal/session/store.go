package session

import (
	"context"
	"fmt"
	"time"

	"warbler/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewStore builds the session backend selected by cfg.SessionBackend.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	secure := cfg.Production()

	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return NewRedisStore(client, ttl, secure), nil
	default:
		return NewCookieStore([]byte(cfg.SecretKey), ttl, secure), nil
	}
}
