// Package ticket defines the support-ticket domain types shared by the
// HTTP handlers and the instrumentation layer.
package ticket

import "context"

// Default label values used when a ticket omits a field.
const (
	DefaultCategory    = "general_inquiry"
	DefaultChannel     = "web"
	DefaultEnvironment = "production"
)

// Ticket is an inbound support ticket.
type Ticket struct {
	// ID is the ticket identifier (e.g., "TKT-a1b2c3").
	ID string `json:"ticket_id"`

	// CustomerID identifies the customer who opened the ticket.
	CustomerID string `json:"customer_id"`

	// Category is the ticket category (e.g., "technical_support",
	// "billing_inquiry"). Empty means general_inquiry.
	Category string `json:"category"`

	// Channel is the intake channel ("web", "email", "chat").
	// Empty means web.
	Channel string `json:"channel"`

	// Priority is the processing priority ("high", "medium", "low").
	Priority string `json:"priority"`

	// Subject is the ticket subject line.
	Subject string `json:"subject"`

	// Description is the customer's problem description.
	Description string `json:"description"`
}

// MetricCategory returns the category label value, defaulting when unset.
func (t *Ticket) MetricCategory() string {
	if t == nil || t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// MetricChannel returns the channel label value, defaulting when unset.
func (t *Ticket) MetricChannel() string {
	if t == nil || t.Channel == "" {
		return DefaultChannel
	}
	return t.Channel
}

// Outcome is the resolution outcome of a processing attempt. It is a
// closed set: AutoResolved, Escalated, or Pending.
type Outcome interface {
	isOutcome()
}

// AutoResolved indicates the agent answered the ticket without human
// intervention.
type AutoResolved struct {
	// Confidence is the model's confidence in the answer, in [0, 1].
	Confidence float64
}

// Escalated indicates the ticket was handed to a human agent.
type Escalated struct {
	// Reason is the escalation reason (e.g., "low_confidence",
	// "customer_request"). Empty renders as "unknown" in metrics.
	Reason string
}

// Pending indicates processing completed without a final resolution.
type Pending struct{}

func (AutoResolved) isOutcome() {}
func (Escalated) isOutcome()    {}
func (Pending) isOutcome()      {}

// Result is the outcome of one ticket-processing attempt.
type Result struct {
	// Outcome is the resolution outcome. A nil Outcome is treated
	// as Pending.
	Outcome Outcome

	// Response is the text returned to the customer, if any.
	Response string
}

// ConfidenceTier buckets a confidence score into the coarse tiers used as
// metric labels. Boundaries are strict: 0.85 classifies as medium, 0.86
// as high.
func ConfidenceTier(confidence float64) string {
	switch {
	case confidence > 0.85:
		return "high"
	case confidence > 0.70:
		return "medium"
	default:
		return "low"
	}
}

// envKey is the context key carrying the deployment environment override.
type envKey struct{}

// WithEnvironment returns a context carrying an environment override for
// the processed-ticket metrics (e.g., "staging" during a canary run).
func WithEnvironment(ctx context.Context, environment string) context.Context {
	return context.WithValue(ctx, envKey{}, environment)
}

// Environment returns the environment carried by the context, or
// DefaultEnvironment when absent.
func Environment(ctx context.Context) string {
	if env, ok := ctx.Value(envKey{}).(string); ok && env != "" {
		return env
	}
	return DefaultEnvironment
}
