// Package dispatch publishes case records to the trade queue.
//
// A live feature flag picks the path on every call. With the flag off the raw
// case record is published as is. With the flag on the record is transformed
// into a trade payload, validated against the latest schema for its kind and
// wrapped in a routed envelope. A payload that fails validation is logged and
// dropped; the caller sees no error.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fes/internal/document"
	"fes/internal/trade/metrics"
	"fes/internal/trade/models"
	"fes/internal/trade/schema"
	"fes/internal/trade/transform"
)

const tracerName = "fes/internal/trade/dispatch"

// FlagSource answers live feature-flag lookups.
type FlagSource interface {
	Enabled(ctx context.Context, key string) (bool, error)
}

// Publisher delivers a message to a queue. Delivery and retry are its concern.
type Publisher interface {
	Publish(ctx context.Context, key string, message any, url, queueName string, enabled bool) error
}

// Destination names the queue messages are published to.
type Destination struct {
	URL       string
	QueueName string
	Enabled   bool
}

// Router chooses the dispatch path and publishes the resulting envelope.
type Router struct {
	flags       FlagSource
	flagKey     string
	publisher   Publisher
	transformer *transform.Transformer
	registry    *schema.Registry
	destination Destination
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	now         func() time.Time
	newID       func() string
}

type Option func(r *Router)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithClock overrides the clock used for envelope timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		r.now = now
	}
}

// WithMessageIDs overrides message id generation.
func WithMessageIDs(newID func() string) Option {
	return func(r *Router) {
		r.newID = newID
	}
}

// New constructs a Router. flagKey is looked up on flags for every dispatch.
func New(flags FlagSource, flagKey string, publisher Publisher, transformer *transform.Transformer, registry *schema.Registry, destination Destination, opts ...Option) (*Router, error) {
	if flags == nil {
		return nil, errors.New("flag source is required")
	}
	if publisher == nil {
		return nil, errors.New("publisher is required")
	}
	if transformer == nil {
		return nil, errors.New("transformer is required")
	}
	if registry == nil {
		return nil, errors.New("schema registry is required")
	}
	r := &Router{
		flags:       flags,
		flagKey:     flagKey,
		publisher:   publisher,
		transformer: transformer,
		registry:    registry,
		destination: destination,
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// DispatchCatchCertificate publishes a catch certificate case.
func (r *Router) DispatchCatchCertificate(ctx context.Context, doc *document.Document, c *models.CatchCertificateCase, results []models.CatchCertificateQueryResult) error {
	return r.dispatch(ctx, document.KindCatchCertificate, c, func() models.TradePayload {
		return r.transformer.CatchCertificate(doc, c, results)
	})
}

// DispatchProcessingStatement publishes a processing statement case.
func (r *Router) DispatchProcessingStatement(ctx context.Context, doc *document.Document, c *models.ProcessingStatementCase, results []models.ProcessingStatementQueryResult) error {
	return r.dispatch(ctx, document.KindProcessingStatement, c, func() models.TradePayload {
		return r.transformer.ProcessingStatement(doc, c, results)
	})
}

// DispatchStorageDocument publishes a storage document case.
func (r *Router) DispatchStorageDocument(ctx context.Context, doc *document.Document, c *models.StorageDocumentCase, results []models.StorageDocumentQueryResult) error {
	return r.dispatch(ctx, document.KindStorageDocument, c, func() models.TradePayload {
		return r.transformer.StorageDocument(doc, c, results)
	})
}

func (r *Router) dispatch(ctx context.Context, kind document.Kind, c models.CaseRecord, build func() models.TradePayload) error {
	h := c.Header()
	subject := models.Subject(models.LabelFor(kind), h.DocumentNumber)

	ctx, span := r.tracer.Start(ctx, "trade.dispatch", trace.WithAttributes(
		attribute.String("document.number", h.DocumentNumber),
		attribute.String("document.kind", string(kind)),
	))
	defer span.End()

	path := metrics.PathBypass
	if r.integrationEnabled(ctx) {
		path = metrics.PathFull
	}
	span.SetAttributes(attribute.String("trade.path", path))

	var message any
	if path == metrics.PathBypass {
		message = &BypassEnvelope{Body: c, Subject: subject, SessionID: h.CorrelationID}
	} else {
		env, ok, err := r.validatedEnvelope(ctx, kind, subject, build())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if !ok {
			r.observe(kind, path, metrics.OutcomeInvalid)
			return nil
		}
		message = env
	}

	if err := r.publisher.Publish(ctx, h.DocumentNumber, message, r.destination.URL, r.destination.QueueName, r.destination.Enabled); err != nil {
		r.observe(kind, path, metrics.OutcomePublishFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	r.observe(kind, path, metrics.OutcomePublished)
	return nil
}

// integrationEnabled reads the flag live. A failed lookup selects the bypass path.
func (r *Router) integrationEnabled(ctx context.Context) bool {
	enabled, err := r.flags.Enabled(ctx, r.flagKey)
	if err != nil {
		r.logger.WarnContext(ctx, "feature flag lookup failed, using bypass dispatch",
			"flag", r.flagKey,
			"error", err,
		)
		if r.metrics != nil {
			r.metrics.FlagLookupFailure.Inc()
		}
		return false
	}
	return enabled
}

func (r *Router) validatedEnvelope(ctx context.Context, kind document.Kind, subject string, payload models.TradePayload) (*Envelope, bool, error) {
	validator, err := r.registry.Latest(kind)
	if err != nil {
		return nil, false, err
	}
	h := payload.Header()
	res := validator.Validate(payload)
	if !res.Valid {
		r.logger.ErrorContext(ctx, "trade payload failed schema validation",
			"document_number", h.DocumentNumber,
			"kind", string(kind),
			"schema_version", validator.Version(),
			"errors", res.Errors,
		)
		if r.metrics != nil {
			r.metrics.ObserveValidationErrors(string(kind), len(res.Errors))
		}
		return nil, false, nil
	}
	return &Envelope{
		Body:          payload,
		MessageID:     r.newID(),
		CorrelationID: h.CorrelationID,
		ContentType:   ContentTypeJSON,
		ApplicationProperties: ApplicationProperties{
			EntityKey:      h.DocumentNumber,
			PublisherID:    PublisherID,
			OrganisationID: h.Exporter.AccountID,
			UserID:         h.Exporter.ContactID,
			SchemaVersion:  validator.Version(),
			Type:           MessageType,
			Status:         payload.TradeStatus(),
			TimestampUTC:   r.now().UTC().Format(time.RFC3339Nano),
		},
		Subject: subject,
	}, true, nil
}

func (r *Router) observe(kind document.Kind, path, outcome string) {
	if r.metrics != nil {
		r.metrics.ObserveDispatch(string(kind), path, outcome)
	}
}
