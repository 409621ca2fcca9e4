package audit

import "time"

// EventType names a lifecycle action recorded on a document's audit trail.
type EventType string

const (
	EventVoided       EventType = "VOIDED"
	EventInvestigated EventType = "INVESTIGATED"
)

// Event is appended to a document's audit trail after a successful mutation.
// The trail is append-only; events are never rewritten.
type Event struct {
	EventType   EventType         `json:"eventType"`
	TriggeredBy string            `json:"triggeredBy"`
	Timestamp   time.Time         `json:"timestamp"`
	Data        map[string]string `json:"data,omitempty"`
	RequestID   string            `json:"requestId,omitempty"`
}

// Data key for the investigation status carried by EventInvestigated.
const DataInvestigationStatus = "investigationStatus"
