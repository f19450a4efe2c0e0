package metrics

import (
	"fmt"
	"log/slog"
	"sync"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CostModel prices one LLM call from its token usage. Satisfied by
// costs.Calculator.
type CostModel interface {
	Cost(provider, model string, inputTokens, outputTokens int) float64
}

// Collector is the main orchestrator for all Prometheus metrics in the
// support agent. It manages metric registration and provides a unified
// interface for recording metrics across all components.
//
// The collector is designed for low overhead on the hot path:
//   - Pre-allocated metric instances
//   - Atomic updates per label combination (prometheus client vectors)
//   - Cardinality limits to prevent memory issues
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry
	logger   *slog.Logger

	// Ticket lifecycle metrics
	ticketMetrics *TicketMetrics

	// LLM API metrics
	llmMetrics *LLMMetrics

	// HTTP request metrics
	httpMetrics *HTTPMetrics

	// Operational gauges (queue depth, pool, budgets, deployment info)
	opsMetrics *OpsMetrics

	// costModel prices LLM calls; nil skips the cost counter
	costModel CostModel

	// Cardinality tracking
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created. Duplicate registration panics via MustRegister,
// which is a process-start bug, not a runtime condition.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "ai",
//		Subsystem: "agent",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.ResponseDurationBuckets) == 0 {
		// End-to-end ticket handling, 100ms - 30s, in milliseconds
		cfg.ResponseDurationBuckets = []float64{
			100, 250, 500, 1000, 2000, 3000, 5000, 10000, 15000, 20000, 30000,
		}
	}
	if len(cfg.LLMDurationBuckets) == 0 {
		// LLM API latencies, 500ms - 60s, in seconds
		cfg.LLMDurationBuckets = []float64{0.5, 1, 2, 3, 5, 10, 15, 20, 30, 60}
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		logger:             slog.Default().With("component", "metrics"),
		cardinalityLimiter: NewCardinalityLimiter(10000), // Max 10K unique label sets
	}

	// Initialize metric subsystems
	c.ticketMetrics = NewTicketMetrics(cfg, registry)
	c.llmMetrics = NewLLMMetrics(cfg, registry)
	c.httpMetrics = NewHTTPMetrics(cfg, registry)
	c.opsMetrics = NewOpsMetrics(cfg, registry)

	return c
}

// SetCostModel sets the model used to price LLM calls inside
// TrackLLMCall. A nil model disables the cost counter.
func (c *Collector) SetCostModel(model CostModel) {
	c.costModel = model
}

// RecordTicketProcessed records one successfully handled ticket.
//
// Parameters:
//   - category: ticket category (e.g., "billing_inquiry")
//   - environment: deployment environment (e.g., "production")
//   - channel: intake channel (e.g., "web", "email")
func (c *Collector) RecordTicketProcessed(category, environment, channel string) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("ticket:%s:%s:%s", category, environment, channel)
	if !c.cardinalityLimiter.Allow(labelSet) {
		// Aggregate into "other" to prevent cardinality explosion
		category = "other"
	}

	c.ticketMetrics.RecordProcessed(category, environment, channel)
}

// RecordAutoResolved records a ticket the agent resolved without a human.
//
// Parameters:
//   - category: ticket category
//   - confidenceTier: "high", "medium", or "low"
func (c *Collector) RecordAutoResolved(category, confidenceTier string) {
	if !c.config.Enabled {
		return
	}

	c.ticketMetrics.RecordAutoResolved(category, confidenceTier)
}

// RecordEscalated records a ticket handed off to a human agent.
//
// Parameters:
//   - category: ticket category
//   - reason: escalation reason ("low_confidence", "customer_request", ...)
func (c *Collector) RecordEscalated(category, reason string) {
	if !c.config.Enabled {
		return
	}

	c.ticketMetrics.RecordEscalated(category, reason)
}

// RecordTicketFailed records a ticket whose processing returned an error.
func (c *Collector) RecordTicketFailed(category, channel string) {
	if !c.config.Enabled {
		return
	}

	c.ticketMetrics.RecordFailed(category, channel)
}

// ObserveResponseDuration records the end-to-end handling time of one
// ticket in milliseconds.
func (c *Collector) ObserveResponseDuration(ms float64) {
	if !c.config.Enabled {
		return
	}

	c.ticketMetrics.ObserveResponseDuration(ms)
}

// RecordLLMRequest records one completed LLM API call.
//
// Parameters:
//   - provider: LLM provider name (e.g., "anthropic", "openai")
//   - model: model name (e.g., "claude-sonnet-4")
//   - status: "success" or "error"
func (c *Collector) RecordLLMRequest(provider, model, status string) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("llm:%s:%s:%s", provider, model, status)
	if !c.cardinalityLimiter.Allow(labelSet) {
		model = "other"
	}

	c.llmMetrics.RecordRequest(provider, model, status)
}

// RecordLLMError records a classified provider failure.
//
// Parameters:
//   - provider: LLM provider name
//   - errorType: "rate_limit", "timeout", "auth", "server_error",
//     "canceled", or "unknown"
func (c *Collector) RecordLLMError(provider, errorType string) {
	if !c.config.Enabled {
		return
	}

	c.llmMetrics.RecordError(provider, errorType)
}

// RecordLLMTokens records token consumption for one call, split by
// direction.
func (c *Collector) RecordLLMTokens(provider, model string, inputTokens, outputTokens int) {
	if !c.config.Enabled {
		return
	}

	c.llmMetrics.RecordTokens(provider, model, inputTokens, outputTokens)
}

// RecordLLMCost adds the dollar cost of one call to the running total.
func (c *Collector) RecordLLMCost(provider, model string, cost float64) {
	if !c.config.Enabled {
		return
	}

	c.llmMetrics.RecordCost(provider, model, cost)
}

// ObserveLLMDuration records the latency of one LLM call in seconds.
func (c *Collector) ObserveLLMDuration(provider, model string, seconds float64) {
	if !c.config.Enabled {
		return
	}

	c.llmMetrics.ObserveDuration(provider, model, seconds)
}

// RecordHTTPRequest records one served HTTP request.
//
// Parameters:
//   - method: HTTP method
//   - endpoint: route pattern (e.g., "/api/v1/tickets")
//   - status: numeric response status as a string (e.g., "200")
func (c *Collector) RecordHTTPRequest(method, endpoint, status string) {
	if !c.config.Enabled {
		return
	}

	c.httpMetrics.RecordRequest(method, endpoint, status)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the
// specified maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
