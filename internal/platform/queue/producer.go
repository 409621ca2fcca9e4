// Package queue publishes JSON messages to Kafka-compatible brokers.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// ErrNoDestination is returned when a publish names no broker or topic.
var ErrNoDestination = errors.New("queue url and name are required")

// headerCarrier is implemented by messages that want record headers.
type headerCarrier interface {
	Headers() map[string]string
}

// Producer publishes to any broker list it is given, keeping one client per
// list. It is safe for concurrent use.
type Producer struct {
	mu              sync.Mutex
	clients         map[string]*kgo.Client
	opts            []kgo.Opt
	deliveryTimeout time.Duration
	logger          *slog.Logger
}

// DefaultDeliveryTimeout bounds a single Publish when no option overrides it.
const DefaultDeliveryTimeout = 30 * time.Second

type Option func(p *Producer)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Producer) {
		p.logger = logger
	}
}

// WithDeliveryTimeout bounds how long Publish waits for the broker to
// acknowledge a record. Non-positive values keep the default.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(p *Producer) {
		if d > 0 {
			p.deliveryTimeout = d
		}
	}
}

// WithClientOptions appends franz-go options applied to every client.
func WithClientOptions(opts ...kgo.Opt) Option {
	return func(p *Producer) {
		p.opts = append(p.opts, opts...)
	}
}

func NewProducer(opts ...Option) *Producer {
	p := &Producer{
		clients:         make(map[string]*kgo.Client),
		deliveryTimeout: DefaultDeliveryTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	// franz-go retries forever by default; callers may run on contexts that
	// never cancel.
	p.opts = append([]kgo.Opt{
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression(), kgo.NoCompression()),
		kgo.RecordDeliveryTimeout(p.deliveryTimeout),
	}, p.opts...)
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Publish encodes message as JSON and produces it synchronously to queueName
// on the brokers in url (comma separated). key becomes the record key. With
// enabled false nothing is sent. Publish gives up after the delivery timeout
// even when ctx has no deadline.
func (p *Producer) Publish(ctx context.Context, key string, message any, url, queueName string, enabled bool) error {
	if !enabled {
		p.logger.InfoContext(ctx, "queue publishing disabled, message not sent",
			"key", key,
			"queue", queueName,
		)
		return nil
	}
	if strings.TrimSpace(url) == "" || queueName == "" {
		return ErrNoDestination
	}

	value, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	client, err := p.client(url)
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Topic:   queueName,
		Key:     []byte(key),
		Value:   value,
		Headers: recordHeaders(message),
	}
	produceCtx, cancel := context.WithTimeout(ctx, p.deliveryTimeout)
	defer cancel()
	if err := client.ProduceSync(produceCtx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", queueName, err)
	}
	p.logger.DebugContext(ctx, "message published",
		"key", key,
		"queue", queueName,
		"partition", record.Partition,
		"offset", record.Offset,
	)
	return nil
}

func (p *Producer) client(url string) (*kgo.Client, error) {
	brokers := splitBrokers(url)
	id := strings.Join(brokers, ",")

	p.mu.Lock()
	defer p.mu.Unlock()
	if cl, ok := p.clients[id]; ok {
		return cl, nil
	}
	opts := append([]kgo.Opt{kgo.SeedBrokers(brokers...)}, p.opts...)
	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create queue client: %w", err)
	}
	p.clients[id] = cl
	return cl, nil
}

// Close flushes buffered records and closes every client.
func (p *Producer) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for id, cl := range p.clients {
		if err := cl.Flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", id, err))
		}
		cl.Close()
		delete(p.clients, id)
	}
	return errors.Join(errs...)
}

func splitBrokers(url string) []string {
	var brokers []string
	for _, b := range strings.Split(url, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// recordHeaders returns the message headers sorted by key.
func recordHeaders(message any) []kgo.RecordHeader {
	carrier, ok := message.(headerCarrier)
	if !ok {
		return nil
	}
	h := carrier.Headers()
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	headers := make([]kgo.RecordHeader, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kgo.RecordHeader{Key: k, Value: []byte(h[k])})
	}
	return headers
}
