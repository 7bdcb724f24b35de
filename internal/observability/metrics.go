package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StoreMutations counts committed store mutations by operation (create, update, delete).
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "career_pulse_store_mutations_total",
		Help: "Committed resume store mutations by operation.",
	}, []string{"op"})

	// PersistFailures counts failed writes of the persisted resume list.
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "career_pulse_store_persist_failures_total",
		Help: "Failed writes of the persisted resume list.",
	})

	// AssistantRequests counts writing-assistant calls by prompt type and outcome
	// (ok, error, unavailable).
	AssistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "career_pulse_assistant_requests_total",
		Help: "Writing assistant requests by prompt type and outcome.",
	}, []string{"type", "outcome"})

	// HTTPRequests counts API requests by method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "career_pulse_http_requests_total",
		Help: "HTTP API requests by method and status code.",
	}, []string{"method", "code"})
)

// MetricsHandler exposes Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
