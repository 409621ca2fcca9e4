package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "trade_queue_integration", cfg.Trade.IntegrationFlag)
		assert.False(t, cfg.Trade.QueueEnabled)
		assert.Equal(t, 30*time.Second, cfg.Trade.PublishTimeout)
		assert.Equal(t, 10, cfg.Redis.PoolSize)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("FES_ADDR", ":9090")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("TRADE_QUEUE_ENABLED", "true")
		t.Setenv("TRADE_QUEUE_URL", "broker-1:9092,broker-2:9092")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
		assert.True(t, cfg.Trade.QueueEnabled)
		assert.Equal(t, "broker-1:9092,broker-2:9092", cfg.Trade.QueueURL)
	})

	t.Run("invalid duration fails", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")

		_, err := FromEnv()
		require.Error(t, err)
	})
}
