//go:build integration

package featureflag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"fes/internal/platform/featureflag"
	"fes/pkg/testutil/containers"
)

type RedisSourceIntegrationSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	source *featureflag.RedisSource
}

func TestRedisSourceIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisSourceIntegrationSuite))
}

func (s *RedisSourceIntegrationSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.source = featureflag.NewRedisSource(s.redis.Client)
}

func (s *RedisSourceIntegrationSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSourceIntegrationSuite) TestFlagChangesAreSeenLive() {
	ctx := context.Background()
	key := s.source.Key("trade_queue_integration")

	enabled, err := s.source.Enabled(ctx, "trade_queue_integration")
	s.Require().NoError(err)
	s.False(enabled)

	s.Require().NoError(s.redis.Client.Set(ctx, key, "true", 0).Err())
	enabled, err = s.source.Enabled(ctx, "trade_queue_integration")
	s.Require().NoError(err)
	s.True(enabled)

	s.Require().NoError(s.redis.Client.Set(ctx, key, "false", 0).Err())
	enabled, err = s.source.Enabled(ctx, "trade_queue_integration")
	s.Require().NoError(err)
	s.False(enabled)
}
