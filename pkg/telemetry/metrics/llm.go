package metrics

import (
	"helpdesk-hq/agentd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LLMMetrics tracks LLM API consumption and spend.
//
// Metrics:
//   - ai_agent_llm_api_requests_total: calls by provider, model, status
//   - ai_agent_llm_api_errors_total: failures by provider and error type
//   - ai_agent_llm_tokens_total: token consumption by provider, model, direction
//   - ai_agent_llm_api_cost_dollars: running dollar spend by provider, model
//   - ai_agent_llm_response_duration_seconds: call latency histogram
type LLMMetrics struct {
	// Total API calls
	requestsTotal *prometheus.CounterVec

	// Classified failures
	errorsTotal *prometheus.CounterVec

	// Token consumption, token_type is "input" or "output"
	tokensTotal *prometheus.CounterVec

	// Running dollar spend
	costDollars *prometheus.CounterVec

	// Call latency in seconds
	responseDuration *prometheus.HistogramVec
}

// NewLLMMetrics creates and registers LLM metrics with the provided registry.
func NewLLMMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LLMMetrics {
	lm := &LLMMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "llm_api_requests_total",
				Help:      "Total number of LLM API requests",
			},
			[]string{"provider", "model", "status"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "llm_api_errors_total",
				Help:      "Total number of LLM API errors by type",
			},
			[]string{"provider", "error_type"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "llm_tokens_total",
				Help:      "Total number of tokens consumed by LLM calls",
			},
			[]string{"provider", "model", "token_type"},
		),

		costDollars: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "llm_api_cost_dollars",
				Help:      "Cumulative LLM API spend in USD",
			},
			[]string{"provider", "model"},
		),

		responseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "llm_response_duration_seconds",
				Help:      "LLM API call latency in seconds",
				Buckets:   cfg.LLMDurationBuckets,
			},
			[]string{"provider", "model"},
		),
	}

	registry.MustRegister(
		lm.requestsTotal,
		lm.errorsTotal,
		lm.tokensTotal,
		lm.costDollars,
		lm.responseDuration,
	)

	return lm
}

// RecordRequest increments the request counter.
func (lm *LLMMetrics) RecordRequest(provider, model, status string) {
	lm.requestsTotal.WithLabelValues(provider, model, status).Inc()
}

// RecordError increments the classified error counter.
func (lm *LLMMetrics) RecordError(provider, errorType string) {
	lm.errorsTotal.WithLabelValues(provider, errorType).Inc()
}

// RecordTokens records token consumption split by direction. Zero counts
// are skipped.
func (lm *LLMMetrics) RecordTokens(provider, model string, inputTokens, outputTokens int) {
	if inputTokens > 0 {
		lm.tokensTotal.WithLabelValues(provider, model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		lm.tokensTotal.WithLabelValues(provider, model, "output").Add(float64(outputTokens))
	}
}

// RecordCost adds one call's dollar cost to the running total.
// Negative values panic per the prometheus counter invariant.
func (lm *LLMMetrics) RecordCost(provider, model string, cost float64) {
	lm.costDollars.WithLabelValues(provider, model).Add(cost)
}

// ObserveDuration records one call latency in seconds.
func (lm *LLMMetrics) ObserveDuration(provider, model string, seconds float64) {
	lm.responseDuration.WithLabelValues(provider, model).Observe(seconds)
}
