package metrics

import (
	"net/http"
	"time"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "issuegate"

	// policyDisabled labels validations skipped because the ref is not enabled.
	policyDisabled = "DISABLED"
)

// Metrics holds the validation collectors on a private registry so several
// servers (and tests) never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	// validations counts verdicts.
	// Labels: policy (MANDATORY, SUGGESTED, OPTIONAL, DISABLED), verdict (accepted, rejected)
	validations *prometheus.CounterVec

	// issueChecks counts tracker lookups.
	// Labels: outcome (exists, does_not_exist, unreachable)
	issueChecks *prometheus.CounterVec

	duration prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total commit validations by association policy and verdict",
		}, []string{"policy", "verdict"}),
		issueChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issue_checks_total",
			Help:      "Total issue existence checks by outcome",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating one commit, tracker lookups included",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// ObserveVerdict records one validation call.
func (m *Metrics) ObserveVerdict(verdict models.Verdict, elapsed time.Duration) {
	policy := verdict.Policy.String()
	if policy == "" {
		policy = policyDisabled
	}
	m.validations.WithLabelValues(policy, string(verdict.Kind)).Inc()

	for _, c := range verdict.Classifications {
		m.issueChecks.WithLabelValues(c.Outcome.String()).Inc()
	}
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
