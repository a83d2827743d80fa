package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "orders_server"

var (
	connectionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "connections",
		Name:      "accepted_total",
		Help:      "Count of TCP connections accepted",
	})
	requestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "requests",
		Name:      "parse_errors_total",
		Help:      "Count of requests that could not be parsed",
	})
	responsesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "responses",
		Name:      "written_total",
		Help:      "Count of responses written by handler and status",
	}, []string{"handler", "status"})
	handleDurations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "requests",
		Name:      "duration_seconds",
		Help:      "Time spent producing a response",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"handler"})
)

// MetricsHandler serves /metrics in the Prometheus text format and a plain
// /healthz liveness check.
func MetricsHandler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok\n")); err != nil {
			log.Printf("Error writing healthz response: %v", err)
		}
	})
	return r
}
