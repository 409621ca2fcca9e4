//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fes/internal/platform/config"
	"fes/internal/platform/redis"
	"fes/pkg/testutil/containers"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("empty url means not configured", func(t *testing.T) {
		client, err := redis.New(ctx, config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("connects and reports health", func(t *testing.T) {
		rc := containers.GetManager().GetRedis(t)
		client, err := redis.New(ctx, config.RedisConfig{
			URL:          rc.Addr,
			PoolSize:     2,
			DialTimeout:  time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		assert.NoError(t, client.Health(ctx))
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := redis.New(ctx, config.RedisConfig{URL: "not-a-url"})
		assert.Error(t, err)
	})
}
