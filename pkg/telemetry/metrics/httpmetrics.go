package metrics

import (
	"net/http"
	"strconv"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics tracks inbound HTTP traffic.
//
// Metrics:
//   - ai_agent_http_requests_total: requests by method, endpoint, status
type HTTPMetrics struct {
	requestsTotal *prometheus.CounterVec
}

// NewHTTPMetrics creates and registers HTTP metrics with the provided registry.
func NewHTTPMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HTTPMetrics {
	hm := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "endpoint", "status"},
		),
	}

	registry.MustRegister(hm.requestsTotal)

	return hm
}

// RecordRequest increments the request counter.
func (hm *HTTPMetrics) RecordRequest(method, endpoint, status string) {
	hm.requestsTotal.WithLabelValues(method, endpoint, status).Inc()
}

// statusRecorder captures the response status written by the wrapped
// handler. Defaults to 200 because WriteHeader is optional.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware instruments an HTTP handler with the request counter.
// The endpoint label uses the matched ServeMux pattern when available so
// path parameters (ticket IDs) do not explode cardinality; unmatched
// requests fall back to the raw path.
//
// Panics are not recovered here: the recovery middleware sits outside
// and writes the 500. A panicked request is counted as status 500 since
// the handler never wrote a status through the recorder.
func (c *Collector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		panicked := true
		defer func() {
			status := rec.status
			if panicked {
				status = http.StatusInternalServerError
			}
			endpoint := r.Pattern
			if endpoint == "" {
				endpoint = r.URL.Path
			}
			c.RecordHTTPRequest(r.Method, endpoint, strconv.Itoa(status))
		}()

		next.ServeHTTP(rec, r)
		panicked = false
	})
}
