package models

import "fes/internal/document"

// EventLabel prefixes the message subject, e.g. new_catch_certificate-GBR-2024-CC-1.
type EventLabel string

const (
	LabelCatchCertificate    EventLabel = "new_catch_certificate"
	LabelProcessingStatement EventLabel = "new_processing_statement"
	LabelStorageDocument     EventLabel = "new_storage_document"
)

// LabelFor returns the event label used for a document kind.
func LabelFor(kind document.Kind) EventLabel {
	switch kind {
	case document.KindCatchCertificate:
		return LabelCatchCertificate
	case document.KindProcessingStatement:
		return LabelProcessingStatement
	default:
		return LabelStorageDocument
	}
}

// Subject builds the message subject for a document.
func Subject(label EventLabel, documentNumber string) string {
	return string(label) + "-" + documentNumber
}
