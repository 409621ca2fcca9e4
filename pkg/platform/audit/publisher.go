package audit

import (
	"context"
	"errors"

	"fes/pkg/requestcontext"
)

// Store persists audit events against the document they describe.
type Store interface {
	Append(ctx context.Context, documentNumber string, event Event) error
}

var (
	ErrMissingDocumentNumber = errors.New("audit: document number is required")
	ErrMissingEventType      = errors.New("audit: event type is required")
)

// Publisher stamps and appends audit events. It is append-only and delegates
// persistence to the store so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit fills the timestamp and request id from ctx when unset and appends the event.
func (p *Publisher) Emit(ctx context.Context, documentNumber string, event Event) error {
	if documentNumber == "" {
		return ErrMissingDocumentNumber
	}
	if event.EventType == "" {
		return ErrMissingEventType
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx).UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	return p.store.Append(ctx, documentNumber, event)
}
