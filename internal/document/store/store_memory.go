package store

import (
	"context"
	"sort"
	"sync"

	"fes/internal/document"
	"fes/pkg/platform/audit"
	"fes/pkg/platform/sentinel"
)

// InMemoryStore keeps documents keyed by document number. Used by tests and
// by the server when no database is configured.
type InMemoryStore struct {
	mu        sync.RWMutex
	documents map[string]*document.Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{documents: make(map[string]*document.Document)}
}

// Save inserts or replaces a document.
func (s *InMemoryStore) Save(_ context.Context, doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.DocumentNumber] = doc.Clone()
	return nil
}

// FindOne returns the newest document matching the predicate.
func (s *InMemoryStore) FindOne(_ context.Context, pred document.Predicate) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := s.matchLocked(pred)
	if len(matches) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return matches[0].Clone(), nil
}

func (s *InMemoryStore) Count(_ context.Context, pred document.Predicate) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matchLocked(pred)), nil
}

// UpdateOne applies update to the newest matching document. The predicate
// check and the write happen under one lock, so the update is conditional.
func (s *InMemoryStore) UpdateOne(_ context.Context, pred document.Predicate, update document.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := s.matchLocked(pred)
	if len(matches) == 0 {
		return sentinel.ErrNoRowsAffected
	}
	update.Apply(matches[0])
	return nil
}

// Append adds an event to the document's audit trail.
func (s *InMemoryStore) Append(_ context.Context, documentNumber string, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentNumber]
	if !ok {
		return sentinel.ErrNotFound
	}
	doc.Audit = append(doc.Audit, event)
	return nil
}

func (s *InMemoryStore) matchLocked(pred document.Predicate) []*document.Document {
	var matches []*document.Document
	for _, doc := range s.documents {
		if pred.Matches(doc) {
			matches = append(matches, doc)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches
}
