// Package document models the export certification documents owned by the
// document store: catch certificates, processing statements and storage
// documents, represented as a single record tagged by kind.
package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fes/pkg/platform/audit"
)

// Kind discriminates the three document types.
type Kind string

const (
	KindCatchCertificate    Kind = "catchCertificate"
	KindProcessingStatement Kind = "processingStatement"
	KindStorageDocument     Kind = "storageDocument"
)

// Number markers embedded in document numbers, e.g. GBR-2024-CC-0E42C2DA5.
const (
	markerCatchCertificate    = "-CC-"
	markerProcessingStatement = "-PS-"
	markerStorageDocument     = "-SD-"
)

// Status is the lifecycle status of a document.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusPending  Status = "PENDING"
	StatusComplete Status = "COMPLETE"
	StatusVoid     Status = "VOID"
	StatusBlocked  Status = "BLOCKED"
	StatusLocked   Status = "LOCKED"
)

// KindFromNumber derives the document kind from its number marker.
func KindFromNumber(documentNumber string) (Kind, bool) {
	upper := strings.ToUpper(documentNumber)
	switch {
	case strings.Contains(upper, markerCatchCertificate):
		return KindCatchCertificate, true
	case strings.Contains(upper, markerProcessingStatement):
		return KindProcessingStatement, true
	case strings.Contains(upper, markerStorageDocument):
		return KindStorageDocument, true
	default:
		return "", false
	}
}

// IsCatchCertificateNumber reports whether the number carries the CC marker.
func IsCatchCertificateNumber(documentNumber string) bool {
	kind, ok := KindFromNumber(documentNumber)
	return ok && kind == KindCatchCertificate
}

// Investigation annotates a document under admin investigation. It does not
// change the document status.
type Investigation struct {
	Investigator string `json:"investigator"`
	Status       string `json:"status"`
}

// Exporter is the account that submitted the document.
type Exporter struct {
	ContactID   *string  `json:"contactId,omitempty"`
	AccountID   *string  `json:"accountId,omitempty"`
	FullName    string   `json:"fullName,omitempty"`
	CompanyName string   `json:"companyName,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// Document is the stored record. Fields holds the kind-specific export data.
type Document struct {
	DocumentNumber string
	Kind           Kind
	Status         Status
	PdfReference   string
	CreatedAt      time.Time
	Exporter       *Exporter
	Fields         ExportData
	Audit          []audit.Event
	Investigation  *Investigation
}

type documentJSON struct {
	DocumentNumber string          `json:"documentNumber"`
	Kind           Kind            `json:"kind"`
	Status         Status          `json:"status"`
	PdfReference   string          `json:"documentUri,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Exporter       *Exporter       `json:"exporterDetails,omitempty"`
	ExportData     json.RawMessage `json:"exportData,omitempty"`
	Audit          []audit.Event   `json:"audit"`
	Investigation  *Investigation  `json:"investigation,omitempty"`
}

// MarshalJSON flattens the tagged union into the stored document shape.
func (d Document) MarshalJSON() ([]byte, error) {
	var data json.RawMessage
	if d.Fields != nil {
		raw, err := json.Marshal(d.Fields)
		if err != nil {
			return nil, fmt.Errorf("marshal export data: %w", err)
		}
		data = raw
	}
	auditTrail := d.Audit
	if auditTrail == nil {
		auditTrail = []audit.Event{}
	}
	return json.Marshal(documentJSON{
		DocumentNumber: d.DocumentNumber,
		Kind:           d.Kind,
		Status:         d.Status,
		PdfReference:   d.PdfReference,
		CreatedAt:      d.CreatedAt,
		Exporter:       d.Exporter,
		ExportData:     data,
		Audit:          auditTrail,
		Investigation:  d.Investigation,
	})
}

// UnmarshalJSON decodes export data according to the kind tag.
func (d *Document) UnmarshalJSON(b []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	fields, err := DecodeExportData(raw.Kind, raw.ExportData)
	if err != nil {
		return err
	}
	*d = Document{
		DocumentNumber: raw.DocumentNumber,
		Kind:           raw.Kind,
		Status:         raw.Status,
		PdfReference:   raw.PdfReference,
		CreatedAt:      raw.CreatedAt,
		Exporter:       raw.Exporter,
		Fields:         fields,
		Audit:          raw.Audit,
		Investigation:  raw.Investigation,
	}
	return nil
}

// Clone returns a copy safe to hand out from in-memory stores.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Audit = append([]audit.Event(nil), d.Audit...)
	if d.Exporter != nil {
		exp := *d.Exporter
		c.Exporter = &exp
	}
	if d.Investigation != nil {
		inv := *d.Investigation
		c.Investigation = &inv
	}
	return &c
}
