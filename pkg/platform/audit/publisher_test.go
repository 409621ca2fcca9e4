package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fes/pkg/requestcontext"
)

type recordingStore struct {
	mu     sync.Mutex
	events map[string][]Event
	err    error
}

func (s *recordingStore) Append(_ context.Context, documentNumber string, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.events == nil {
		s.events = make(map[string][]Event)
	}
	s.events[documentNumber] = append(s.events[documentNumber], event)
	return nil
}

func TestPublisher_Emit(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stamps time and request id from context", func(t *testing.T) {
		store := &recordingStore{}
		pub := NewPublisher(store)
		ctx := requestcontext.WithTime(context.Background(), fixed)
		ctx = requestcontext.WithRequestID(ctx, "req-1")

		err := pub.Emit(ctx, "GBR-2024-CC-1", Event{EventType: EventVoided, TriggeredBy: "admin"})
		require.NoError(t, err)

		events := store.events["GBR-2024-CC-1"]
		require.Len(t, events, 1)
		assert.Equal(t, fixed, events[0].Timestamp)
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, "admin", events[0].TriggeredBy)
	})

	t.Run("keeps explicit timestamp", func(t *testing.T) {
		store := &recordingStore{}
		pub := NewPublisher(store)
		explicit := fixed.Add(-time.Hour)

		err := pub.Emit(context.Background(), "GBR-2024-PS-1", Event{
			EventType: EventInvestigated,
			Timestamp: explicit,
			Data:      map[string]string{DataInvestigationStatus: "CLOSED"},
		})
		require.NoError(t, err)
		assert.Equal(t, explicit, store.events["GBR-2024-PS-1"][0].Timestamp)
		assert.Equal(t, "CLOSED", store.events["GBR-2024-PS-1"][0].Data[DataInvestigationStatus])
	})

	t.Run("rejects incomplete events", func(t *testing.T) {
		pub := NewPublisher(&recordingStore{})
		assert.ErrorIs(t, pub.Emit(context.Background(), "", Event{EventType: EventVoided}), ErrMissingDocumentNumber)
		assert.ErrorIs(t, pub.Emit(context.Background(), "GBR-2024-CC-1", Event{}), ErrMissingEventType)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		storeErr := errors.New("write failed")
		pub := NewPublisher(&recordingStore{err: storeErr})
		err := pub.Emit(context.Background(), "GBR-2024-CC-1", Event{EventType: EventVoided})
		assert.ErrorIs(t, err, storeErr)
	})
}
