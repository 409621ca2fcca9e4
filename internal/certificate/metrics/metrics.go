package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for lifecycle mutations.
const (
	OutcomeSuccess      = "success"
	OutcomePrecondition = "precondition"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// Metrics tracks certificate lifecycle mutations.
type Metrics struct {
	Mutations        *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
}

// New creates the certificate metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fes_certificate_mutations_total",
			Help: "Certificate lifecycle mutations by operation and outcome",
		}, []string{"operation", "outcome"}),
		MutationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fes_certificate_mutation_duration_seconds",
			Help:    "Duration of certificate lifecycle mutations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// ObserveMutation records one mutation attempt.
func (m *Metrics) ObserveMutation(operation, outcome string, start time.Time) {
	m.Mutations.WithLabelValues(operation, outcome).Inc()
	m.MutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
