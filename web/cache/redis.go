// Package cache provides the redis connection and the redis-backed session
// store used when sessions are kept server-side.
package cache

import (
	"context"
	"fmt"

	"github.com/nenood/watchlist/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is a client connection, optionally to an embedded server.
type Redis struct {
	client    *redis.Client
	miniRedis *miniredis.Miniredis
}

// OpenRedis connects to redisAddr, or starts an embedded server when the
// address is empty.
func OpenRedis(ctx context.Context, redisAddr string) (*Redis, error) {
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		logger.Info("Embedded Redis started on", mr.Addr())
		return &Redis{
			client:    redis.NewClient(&redis.Options{Addr: mr.Addr()}),
			miniRedis: mr,
		}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisAddr, err)
	}
	logger.Info("Connected to external Redis at", redisAddr)
	return &Redis{client: client}, nil
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

// Close closes the connection and stops the embedded server if running.
func (r *Redis) Close() error {
	err := r.client.Close()
	if r.miniRedis != nil {
		r.miniRedis.Close()
	}
	return err
}
