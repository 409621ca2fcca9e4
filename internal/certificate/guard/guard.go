// Package guard answers read-only lifecycle questions about a document before
// a mutation is attempted.
package guard

import (
	"context"
	"fmt"

	"fes/internal/document"
)

// Counter counts documents matching a predicate.
type Counter interface {
	Count(ctx context.Context, pred document.Predicate) (int, error)
}

// StateGuard scopes each check to the document's collection: catch
// certificates are looked up on their own, everything else in the generic set.
type StateGuard struct {
	store Counter
}

func New(store Counter) *StateGuard {
	return &StateGuard{store: store}
}

func (g *StateGuard) IsVoided(ctx context.Context, documentNumber string) (bool, error) {
	return g.hasStatus(ctx, documentNumber, document.StatusVoid)
}

func (g *StateGuard) IsDraft(ctx context.Context, documentNumber string) (bool, error) {
	return g.hasStatus(ctx, documentNumber, document.StatusDraft)
}

// IsPending is only meaningful for catch certificates; other kinds never pend.
func (g *StateGuard) IsPending(ctx context.Context, documentNumber string, kind document.Kind) (bool, error) {
	if kind != document.KindCatchCertificate {
		return false, nil
	}
	return g.hasStatus(ctx, documentNumber, document.StatusPending)
}

func (g *StateGuard) hasStatus(ctx context.Context, documentNumber string, status document.Status) (bool, error) {
	n, err := g.store.Count(ctx, document.Predicate{
		DocumentNumber: documentNumber,
		Kinds:          document.Scope(documentNumber),
		StatusIn:       []document.Status{status},
	})
	if err != nil {
		return false, fmt.Errorf("check %s status: %w", status, err)
	}
	return n > 0, nil
}
