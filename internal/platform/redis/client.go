package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fes/internal/platform/config"
)

// Client is the connection backing the live feature-flag source.
type Client struct {
	*redis.Client
}

// New connects and pings. A nil client and nil error mean Redis is not
// configured and flags come from configuration instead.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health is the /health check for the flag store.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
