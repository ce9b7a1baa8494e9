package listeners

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codeforge/codemod/internal/transform"
)

// MetricsListener exposes Prometheus counters for dispatched utilities and
// completed transformations, grounded on the shape of the pack's own
// telemetry collector (a private *prometheus.Registry rather than the
// global default, metrics grouped by concern, label-vectors over status).
type MetricsListener struct {
	registry *prometheus.Registry

	transformationsTotal *prometheus.CounterVec
	utilitiesTotal       *prometheus.CounterVec
	manualInstructions   prometheus.Counter
}

// NewMetricsListener builds a listener with its own private registry.
func NewMetricsListener(namespace string) *MetricsListener {
	registry := prometheus.NewRegistry()

	m := &MetricsListener{
		registry: registry,
		transformationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transformations_total",
				Help:      "Total number of transformations run, by outcome",
			},
			[]string{"outcome"},
		),
		utilitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "utilities_dispatched_total",
				Help:      "Total number of utilities dispatched, by perform result type",
			},
			[]string{"result"},
		),
		manualInstructions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "manual_instructions_total",
				Help:      "Total number of manual instructions recorded across all runs",
			},
		),
	}

	registry.MustRegister(m.transformationsTotal, m.utilitiesTotal, m.manualInstructions)
	return m
}

// Handler returns an HTTP handler serving this listener's metrics.
func (m *MetricsListener) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *MetricsListener) PostTransformation(tx *transform.Transformation, contexts []transform.ContextView) {
	m.transformationsTotal.WithLabelValues("completed").Inc()
	m.record(contexts)
}

func (m *MetricsListener) PostTransformationAbort(tx *transform.Transformation, contexts []transform.ContextView, abortErr error) {
	m.transformationsTotal.WithLabelValues("aborted").Inc()
	m.record(contexts)
}

func (m *MetricsListener) record(contexts []transform.ContextView) {
	for _, view := range contexts {
		for _, name := range view.DispatchedNames() {
			result, ok := view.Result(name)
			if !ok {
				continue
			}
			m.utilitiesTotal.WithLabelValues(string(result.Type)).Inc()
		}
		for range view.Instructions() {
			m.manualInstructions.Inc()
		}
	}
}

// StartServer runs a blocking HTTP server exposing this listener's metrics
// at path on addr, mirroring the teacher's StartMetricsServer helper.
func StartServer(addr, path string, m *MetricsListener) error {
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
