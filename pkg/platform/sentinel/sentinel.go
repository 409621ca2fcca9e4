package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: document or record does not exist
//   - ErrNoRowsAffected: a conditional write matched nothing
//   - ErrUnavailable: backing service temporarily unavailable
//   - ErrDisabled: an integration is switched off by configuration
//
// For malformed input, use pkg/domain-errors directly.
var (
	ErrNotFound       = errors.New("not found")
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrUnavailable    = errors.New("unavailable")
	ErrDisabled       = errors.New("disabled")
)
