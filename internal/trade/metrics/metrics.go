package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch paths.
const (
	PathBypass = "bypass"
	PathFull   = "full"
)

// Dispatch outcomes.
const (
	OutcomePublished     = "published"
	OutcomeInvalid       = "schema_invalid"
	OutcomePublishFailed = "publish_failed"
)

// Metrics tracks trade dispatches.
type Metrics struct {
	Dispatches        *prometheus.CounterVec
	ValidationErrors  *prometheus.CounterVec
	FlagLookupFailure prometheus.Counter
}

// New creates the trade metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fes_trade_dispatches_total",
			Help: "Trade dispatches by document kind, path and outcome",
		}, []string{"kind", "path", "outcome"}),
		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fes_trade_schema_validation_errors_total",
			Help: "Schema validation errors reported for transformed trade payloads",
		}, []string{"kind"}),
		FlagLookupFailure: factory.NewCounter(prometheus.CounterOpts{
			Name: "fes_trade_flag_lookup_failures_total",
			Help: "Failed lookups of the trade queue integration flag",
		}),
	}
}

func (m *Metrics) ObserveDispatch(kind, path, outcome string) {
	m.Dispatches.WithLabelValues(kind, path, outcome).Inc()
}

func (m *Metrics) ObserveValidationErrors(kind string, count int) {
	m.ValidationErrors.WithLabelValues(kind).Add(float64(count))
}
