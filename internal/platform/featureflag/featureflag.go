// Package featureflag answers live feature-flag lookups.
package featureflag

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces flag keys in Redis.
const DefaultKeyPrefix = "fes:flags:"

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSource reads flags from Redis on every call. A missing key yields the
// fallback value; a lookup or parse failure is returned to the caller.
type RedisSource struct {
	client   getter
	prefix   string
	fallback bool
}

type RedisOption func(s *RedisSource)

func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisSource) {
		s.prefix = prefix
	}
}

// WithFallback sets the value reported for flags that are not set.
func WithFallback(enabled bool) RedisOption {
	return func(s *RedisSource) {
		s.fallback = enabled
	}
}

func NewRedisSource(client *redis.Client, opts ...RedisOption) *RedisSource {
	return newRedisSource(client, opts...)
}

func newRedisSource(client getter, opts ...RedisOption) *RedisSource {
	s := &RedisSource{client: client, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the Redis key holding flag.
func (s *RedisSource) Key(flag string) string {
	return s.prefix + flag
}

func (s *RedisSource) Enabled(ctx context.Context, flag string) (bool, error) {
	raw, err := s.client.Get(ctx, s.Key(flag)).Result()
	if errors.Is(err, redis.Nil) {
		return s.fallback, nil
	}
	if err != nil {
		return false, fmt.Errorf("read flag %s: %w", flag, err)
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("parse flag %s: %w", flag, err)
	}
	return enabled, nil
}

// StaticSource serves flags fixed at startup, typically from configuration.
type StaticSource struct {
	values   map[string]bool
	fallback bool
}

func NewStaticSource(values map[string]bool, fallback bool) *StaticSource {
	copied := make(map[string]bool, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticSource{values: copied, fallback: fallback}
}

func (s *StaticSource) Enabled(_ context.Context, flag string) (bool, error) {
	if v, ok := s.values[flag]; ok {
		return v, nil
	}
	return s.fallback, nil
}
