package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for pre-approval checks.
const (
	SourceApprovedSite = "approved_site"
	SourceWhitelist    = "whitelist"
	SourceNone         = "none"
	SourceUser         = "user"
)

// Metrics provides observability for the approval module.
// All methods are nil-safe so tests can run without a registry.
type Metrics struct {
	// Pre-approval checks by the trust record that satisfied them
	PreApproval *prometheus.CounterVec

	// Interactive decisions by outcome: approved, denied
	Decisions *prometheus.CounterVec

	// Approved sites written by source: user, whitelist
	SitesCreated *prometheus.CounterVec

	// Engine operation latency by operation name
	OperationLatency *prometheus.HistogramVec
}

// New creates the approval metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates the approval metrics on the given registerer.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PreApproval: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_preapproval_total",
			Help: "Pre-approval checks by the trust record that satisfied them",
		}, []string{"source"}),

		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_decisions_total",
			Help: "Interactive consent decisions by outcome",
		}, []string{"outcome"}),

		SitesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_approved_sites_created_total",
			Help: "Approved sites created by source",
		}, []string{"source"}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "consentd_operation_duration_seconds",
			Help:    "Duration of approval engine operations including store calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncrementPreApproval records which record (if any) satisfied a pre-approval check.
func (m *Metrics) IncrementPreApproval(source string) {
	if m != nil {
		m.PreApproval.WithLabelValues(source).Inc()
	}
}

// IncrementDecision records an interactive decision.
func (m *Metrics) IncrementDecision(approved bool) {
	if m == nil {
		return
	}
	outcome := "denied"
	if approved {
		outcome = "approved"
	}
	m.Decisions.WithLabelValues(outcome).Inc()
}

// IncrementSiteCreated records a new approved site.
func (m *Metrics) IncrementSiteCreated(source string) {
	if m != nil {
		m.SitesCreated.WithLabelValues(source).Inc()
	}
}

// ObserveOperation records the duration of an engine operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
