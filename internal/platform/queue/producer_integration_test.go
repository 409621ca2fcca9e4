//go:build integration

package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"fes/internal/platform/queue"
	"fes/pkg/testutil/containers"
)

type envelope struct {
	Subject string `json:"subject"`
}

func (e envelope) Headers() map[string]string {
	return map[string]string{"subject": e.Subject}
}

type ProducerIntegrationSuite struct {
	suite.Suite
	brokers  string
	admin    *kadm.Client
	producer *queue.Producer
}

func TestProducerIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ProducerIntegrationSuite))
}

func (s *ProducerIntegrationSuite) SetupSuite() {
	rp := containers.GetManager().GetRedpanda(s.T())
	s.brokers = rp.Brokers

	cl, err := kgo.NewClient(kgo.SeedBrokers(s.brokers))
	s.Require().NoError(err)
	s.admin = kadm.NewClient(cl)
}

func (s *ProducerIntegrationSuite) TearDownSuite() {
	if s.admin != nil {
		s.admin.Close()
	}
}

func (s *ProducerIntegrationSuite) SetupTest() {
	s.producer = queue.NewProducer()
}

func (s *ProducerIntegrationSuite) TearDownTest() {
	s.Require().NoError(s.producer.Close(context.Background()))
}

func (s *ProducerIntegrationSuite) createTopic(ctx context.Context, topic string) {
	resp, err := s.admin.CreateTopics(ctx, 1, 1, nil, topic)
	s.Require().NoError(err)
	for _, r := range resp {
		s.Require().NoError(r.Err)
	}
}

func (s *ProducerIntegrationSuite) consumeOne(ctx context.Context, topic string) *kgo.Record {
	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	for {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "no record received")
		s.Require().Empty(fetches.Errors())
		if records := fetches.Records(); len(records) > 0 {
			return records[0]
		}
	}
}

func (s *ProducerIntegrationSuite) TestPublishDeliversKeyValueAndHeaders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "trade-reports-" + time.Now().Format("150405.000000")
	s.createTopic(ctx, topic)

	err := s.producer.Publish(ctx, "GBR-2024-CC-1", envelope{Subject: "new_catch_certificate-GBR-2024-CC-1"}, s.brokers, topic, true)
	s.Require().NoError(err)

	record := s.consumeOne(ctx, topic)
	s.Equal("GBR-2024-CC-1", string(record.Key))
	s.JSONEq(`{"subject":"new_catch_certificate-GBR-2024-CC-1"}`, string(record.Value))
	s.Require().Len(record.Headers, 1)
	s.Equal("subject", record.Headers[0].Key)
	s.Equal("new_catch_certificate-GBR-2024-CC-1", string(record.Headers[0].Value))
}

func (s *ProducerIntegrationSuite) TestDisabledPublishLeavesTopicEmpty() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "trade-disabled-" + time.Now().Format("150405.000000")
	s.createTopic(ctx, topic)

	s.Require().NoError(s.producer.Publish(ctx, "GBR-2024-SD-1", envelope{Subject: "x"}, s.brokers, topic, false))

	offsets, err := s.admin.ListEndOffsets(ctx, topic)
	s.Require().NoError(err)
	offsets.Each(func(o kadm.ListedOffset) {
		s.Equal(int64(0), o.Offset)
	})
}
