package metrics

import (
	"helpdesk-hq/agentd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// TicketMetrics tracks the ticket processing lifecycle.
//
// Metrics:
//   - ai_agent_tickets_processed_total: handled tickets by category, environment, channel
//   - ai_agent_tickets_resolved_auto_total: auto-resolutions by category and confidence tier
//   - ai_agent_tickets_escalated_total: human handoffs by category and reason
//   - ai_agent_tickets_failed_total: processing errors by category and channel
//   - ai_agent_response_duration_milliseconds: end-to-end handling time
type TicketMetrics struct {
	// Successfully processed tickets
	processedTotal *prometheus.CounterVec

	// Tickets resolved without human involvement
	resolvedAutoTotal *prometheus.CounterVec

	// Tickets escalated to a human agent
	escalatedTotal *prometheus.CounterVec

	// Tickets whose processing returned an error
	failedTotal *prometheus.CounterVec

	// End-to-end handling time in milliseconds
	responseDuration prometheus.Histogram
}

// NewTicketMetrics creates and registers ticket metrics with the provided registry.
func NewTicketMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *TicketMetrics {
	tm := &TicketMetrics{
		processedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tickets_processed_total",
				Help:      "Total number of support tickets processed",
			},
			[]string{"category", "environment", "channel"},
		),

		resolvedAutoTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tickets_resolved_auto_total",
				Help:      "Total number of tickets resolved automatically without human intervention",
			},
			[]string{"category", "confidence_tier"},
		),

		escalatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tickets_escalated_total",
				Help:      "Total number of tickets escalated to human agents",
			},
			[]string{"category", "escalation_reason"},
		),

		failedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tickets_failed_total",
				Help:      "Total number of tickets whose processing failed with an error",
			},
			[]string{"category", "channel"},
		),

		responseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "response_duration_milliseconds",
				Help:      "End-to-end ticket handling time in milliseconds",
				Buckets:   cfg.ResponseDurationBuckets,
			},
		),
	}

	registry.MustRegister(
		tm.processedTotal,
		tm.resolvedAutoTotal,
		tm.escalatedTotal,
		tm.failedTotal,
		tm.responseDuration,
	)

	return tm
}

// RecordProcessed increments the processed-ticket counter.
func (tm *TicketMetrics) RecordProcessed(category, environment, channel string) {
	tm.processedTotal.WithLabelValues(category, environment, channel).Inc()
}

// RecordAutoResolved increments the auto-resolution counter.
func (tm *TicketMetrics) RecordAutoResolved(category, confidenceTier string) {
	tm.resolvedAutoTotal.WithLabelValues(category, confidenceTier).Inc()
}

// RecordEscalated increments the escalation counter.
func (tm *TicketMetrics) RecordEscalated(category, reason string) {
	tm.escalatedTotal.WithLabelValues(category, reason).Inc()
}

// RecordFailed increments the failed-ticket counter.
func (tm *TicketMetrics) RecordFailed(category, channel string) {
	tm.failedTotal.WithLabelValues(category, channel).Inc()
}

// ObserveResponseDuration records one handling time in milliseconds.
func (tm *TicketMetrics) ObserveResponseDuration(ms float64) {
	tm.responseDuration.Observe(ms)
}
