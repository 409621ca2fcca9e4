// Package transform maps documents, case records and validation query results
// onto trade payloads. Every function is pure: the only time dependence is the
// injected clock used for the storage-document export date fallback.
package transform

import (
	"time"

	"fes/internal/trade/models"
)

// Transformer holds the immutable settings shared by the per-kind mappings.
type Transformer struct {
	referenceBaseURL string
	now              func() time.Time
}

type Option func(t *Transformer)

// WithClock overrides the clock used for date fallbacks.
func WithClock(now func() time.Time) Option {
	return func(t *Transformer) {
		t.now = now
	}
}

// New builds a Transformer. referenceBaseURL replaces the {BASE_URL}
// placeholder of landing reference URLs.
func New(referenceBaseURL string, opts ...Option) *Transformer {
	t := &Transformer{referenceBaseURL: referenceBaseURL, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DeriveStatus applies the payload status rule: a nil result list means the
// document is void, any blocked result blocks it, otherwise it is complete.
func DeriveStatus[T any](results []T, statusOf func(T) models.ResultStatus) models.TradeStatus {
	if results == nil {
		return models.TradeVoid
	}
	for _, r := range results {
		if statusOf(r) == models.ResultBlocked {
			return models.TradeBlocked
		}
	}
	return models.TradeComplete
}

// validationStatus checks mismatch first and overuse second, so overuse wins.
func validationStatus(isMismatch, isOverAllocated bool) models.ValidationStatus {
	status := models.ValidationSuccess
	if isMismatch {
		status = models.ValidationWeight
	}
	if isOverAllocated {
		status = models.ValidationOveruse
	}
	return status
}

func header(c *models.CaseHeader) models.TradeHeader {
	return models.TradeHeader{
		DocumentNumber:            c.DocumentNumber,
		DocumentURL:               c.DocumentURL,
		DocumentDate:              c.DocumentDate,
		CaseType1:                 c.CaseType1,
		CaseType2:                 c.CaseType2,
		NumberOfFailedSubmissions: c.NumberOfFailedSubmissions,
		Exporter: models.TradeExporter{
			ContactID:   c.Exporter.ContactID,
			AccountID:   c.Exporter.AccountID,
			FullName:    c.Exporter.FullName,
			CompanyName: c.Exporter.CompanyName,
			Address:     c.Exporter.Address,
		},
		ExportedTo:       c.ExportedTo,
		DA:               c.DA,
		CorrelationID:    c.CorrelationID,
		RequestedByAdmin: c.RequestedByAdmin,
	}
}
