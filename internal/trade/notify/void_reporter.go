// Package notify reports certificate lifecycle changes to the trade system.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fes/internal/document"
	"fes/internal/trade/models"
)

type Store interface {
	FindOne(ctx context.Context, pred document.Predicate) (*document.Document, error)
}

// Dispatcher publishes case records. It is satisfied by dispatch.Router.
type Dispatcher interface {
	DispatchCatchCertificate(ctx context.Context, doc *document.Document, c *models.CatchCertificateCase, results []models.CatchCertificateQueryResult) error
	DispatchProcessingStatement(ctx context.Context, doc *document.Document, c *models.ProcessingStatementCase, results []models.ProcessingStatementQueryResult) error
	DispatchStorageDocument(ctx context.Context, doc *document.Document, c *models.StorageDocumentCase, results []models.StorageDocumentQueryResult) error
}

// VoidReporter tells the trade system that an admin voided a document. The
// case record is rebuilt from the stored document and dispatched without query
// results, which the trade payload reports as VOID.
type VoidReporter struct {
	store      Store
	dispatcher Dispatcher
	logger     *slog.Logger
	newID      func() string
}

type Option func(r *VoidReporter)

func WithLogger(logger *slog.Logger) Option {
	return func(r *VoidReporter) {
		r.logger = logger
	}
}

// WithCorrelationIDs overrides correlation id generation.
func WithCorrelationIDs(newID func() string) Option {
	return func(r *VoidReporter) {
		r.newID = newID
	}
}

func NewVoidReporter(store Store, dispatcher Dispatcher, opts ...Option) (*VoidReporter, error) {
	if store == nil {
		return nil, errors.New("document store is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	r := &VoidReporter{store: store, dispatcher: dispatcher, newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// NotifyVoid reloads the document and dispatches its voided case record.
func (r *VoidReporter) NotifyVoid(ctx context.Context, documentNumber string) error {
	doc, err := r.store.FindOne(ctx, document.Predicate{
		DocumentNumber: documentNumber,
		Kinds:          document.Scope(documentNumber),
	})
	if err != nil {
		return fmt.Errorf("load voided document %s: %w", documentNumber, err)
	}

	h := r.header(doc)
	switch data := doc.Fields.(type) {
	case document.CatchCertificateData:
		err = r.dispatcher.DispatchCatchCertificate(ctx, doc, &models.CatchCertificateCase{
			CaseHeader: h,
			Landings:   caseLandings(data),
		}, nil)
	case document.ProcessingStatementData:
		err = r.dispatcher.DispatchProcessingStatement(ctx, doc, &models.ProcessingStatementCase{
			CaseHeader: h,
			PlantName:  data.PlantName,
		}, nil)
	default:
		switch doc.Kind {
		case document.KindCatchCertificate:
			err = r.dispatcher.DispatchCatchCertificate(ctx, doc, &models.CatchCertificateCase{CaseHeader: h}, nil)
		case document.KindProcessingStatement:
			err = r.dispatcher.DispatchProcessingStatement(ctx, doc, &models.ProcessingStatementCase{CaseHeader: h}, nil)
		default:
			err = r.dispatcher.DispatchStorageDocument(ctx, doc, &models.StorageDocumentCase{CaseHeader: h}, nil)
		}
	}
	if err != nil {
		return fmt.Errorf("report void of %s: %w", documentNumber, err)
	}
	r.logger.InfoContext(ctx, "void reported to trade system",
		"document_number", documentNumber,
		"kind", string(doc.Kind),
		"correlation_id", h.CorrelationID,
	)
	return nil
}

func (r *VoidReporter) header(doc *document.Document) models.CaseHeader {
	h := models.CaseHeader{
		DocumentNumber:   doc.DocumentNumber,
		DocumentURL:      doc.PdfReference,
		CaseType1:        models.CaseTypeFor(doc.Kind),
		CaseType2:        models.OutcomeVoidByAdmin,
		ExportedTo:       exportedTo(doc.Fields),
		CorrelationID:    r.newID(),
		RequestedByAdmin: true,
	}
	if !doc.CreatedAt.IsZero() {
		h.DocumentDate = doc.CreatedAt.UTC().Format(time.RFC3339)
	}
	if e := doc.Exporter; e != nil {
		h.Exporter = models.Exporter{
			ContactID:   e.ContactID,
			AccountID:   e.AccountID,
			FullName:    e.FullName,
			CompanyName: e.CompanyName,
			Address:     e.Address,
		}
	}
	return h
}

func exportedTo(fields document.ExportData) *document.Country {
	switch data := fields.(type) {
	case document.CatchCertificateData:
		return data.ExportedTo
	case document.ProcessingStatementData:
		return data.ExportedTo
	case document.StorageDocumentData:
		return data.ExportedTo
	default:
		return nil
	}
}

func caseLandings(data document.CatchCertificateData) []models.CaseLanding {
	var landings []models.CaseLanding
	for _, p := range data.Products {
		for _, line := range p.CaughtBy {
			landings = append(landings, models.CaseLanding{
				ID:            line.ID,
				SpeciesCode:   p.SpeciesCode,
				CommodityCode: p.CommodityCode,
				State:         p.State,
				Presentation:  p.Presentation,
				VesselName:    line.Vessel,
				PLN:           line.PLN,
				Date:          line.Date,
				Weight:        line.Weight,
			})
		}
	}
	return landings
}
