package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus instruments. Each server gets
// its own registry so repeated construction (tests) never double-registers.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	trainings   *prometheus.CounterVec
	predictions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "probclass_http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		trainings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "probclass_training_runs_total",
			Help: "Training runs started, by status.",
		}, []string{"status"}),
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "probclass_predictions_total",
			Help: "Prediction requests, by result.",
		}, []string{"result"}),
	}
}

// Handler serves the metrics endpoint for this server's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts every request by method and response status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(sw, r)
		m.requests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
	})
}
