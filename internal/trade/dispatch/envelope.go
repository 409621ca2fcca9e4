package dispatch

import "fes/internal/trade/models"

// Routing constants carried on every full-path envelope.
const (
	PublisherID     = "FES"
	MessageType     = "Internal"
	ContentTypeJSON = "application/json"
)

// ApplicationProperties are the routing properties read by trade consumers.
// Field names are part of the wire contract.
type ApplicationProperties struct {
	EntityKey      string             `json:"EntityKey"`
	PublisherID    string             `json:"PublisherId"`
	OrganisationID *string            `json:"OrganisationId"`
	UserID         *string            `json:"UserId"`
	SchemaVersion  int                `json:"SchemaVersion"`
	Type           string             `json:"Type"`
	Status         models.TradeStatus `json:"Status"`
	TimestampUTC   string             `json:"TimestampUtc"`
}

// Envelope wraps a validated trade payload.
type Envelope struct {
	Body                  models.TradePayload   `json:"body"`
	MessageID             string                `json:"messageId"`
	CorrelationID         string                `json:"correlationId"`
	ContentType           string                `json:"contentType"`
	ApplicationProperties ApplicationProperties `json:"applicationProperties"`
	Subject               string                `json:"subject"`
}

// Headers are copied onto the queue record next to the encoded envelope.
func (e *Envelope) Headers() map[string]string {
	return map[string]string{
		"messageId":     e.MessageID,
		"correlationId": e.CorrelationID,
		"contentType":   e.ContentType,
		"subject":       e.Subject,
	}
}

// BypassEnvelope wraps a raw case record published without transformation.
type BypassEnvelope struct {
	Body      models.CaseRecord `json:"body"`
	Subject   string            `json:"subject"`
	SessionID string            `json:"sessionId"`
}

func (e *BypassEnvelope) Headers() map[string]string {
	return map[string]string{
		"subject":   e.Subject,
		"sessionId": e.SessionID,
	}
}
