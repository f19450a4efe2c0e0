package metrics

import (
	"context"
	"time"

	"helpdesk-hq/agentd/pkg/llm"
	"helpdesk-hq/agentd/pkg/ticket"
)

// TicketFunc processes one support ticket.
type TicketFunc func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error)

// CallFunc performs one LLM API call.
type CallFunc func(ctx context.Context) (*llm.Result, error)

// TrackTicketProcessing wraps a ticket-processing function with the full
// lifecycle instrumentation: the processed counter, the outcome counters,
// and the response-duration histogram.
//
// On error the wrapper logs, increments tickets_failed_total, and
// re-returns the error unchanged; no success-path counters move and no
// duration is observed. The caller sees exactly the error the wrapped
// function produced.
func (c *Collector) TrackTicketProcessing(fn TicketFunc) TicketFunc {
	return func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
		start := time.Now()

		result, err := fn(ctx, tk)

		category := tk.MetricCategory()
		channel := tk.MetricChannel()

		if err != nil {
			c.logger.ErrorContext(ctx, "ticket processing failed",
				"ticket_id", tk.ID,
				"category", category,
				"error", err,
			)
			c.RecordTicketFailed(category, channel)
			return result, err
		}

		elapsed := float64(time.Since(start).Milliseconds())
		c.RecordTicketProcessed(category, ticket.Environment(ctx), channel)
		c.ObserveResponseDuration(elapsed)

		var outcome ticket.Outcome = ticket.Pending{}
		if result != nil && result.Outcome != nil {
			outcome = result.Outcome
		}

		switch o := outcome.(type) {
		case ticket.AutoResolved:
			c.RecordAutoResolved(category, ticket.ConfidenceTier(o.Confidence))
		case ticket.Escalated:
			reason := o.Reason
			if reason == "" {
				reason = "unknown"
			}
			c.RecordEscalated(category, reason)
		case ticket.Pending:
			// No outcome counter; the processed counter already moved.
		}

		return result, nil
	}
}

// TrackLLMCall wraps an LLM call with the consumption instrumentation:
// the request counter, the latency histogram on success, and, when the
// provider reported usage, the token and cost counters.
//
// Failures increment llm_api_requests_total with status=error plus the
// classified llm_api_errors_total series, and the error is re-returned
// unchanged. Context cancellation is recorded like any other failure
// (error_type=canceled or timeout) and not special-cased. No duration
// is observed for a failed or cancelled attempt; a partial latency
// would skew the histogram low.
func (c *Collector) TrackLLMCall(provider, model string, fn CallFunc) CallFunc {
	return func(ctx context.Context) (*llm.Result, error) {
		start := time.Now()

		result, err := fn(ctx)

		if err != nil {
			c.RecordLLMRequest(provider, model, "error")
			c.RecordLLMError(provider, string(llm.Classify(err)))
			c.logger.WarnContext(ctx, "llm call failed",
				"provider", provider,
				"model", model,
				"error", err,
			)
			return result, err
		}

		c.ObserveLLMDuration(provider, model, time.Since(start).Seconds())
		c.RecordLLMRequest(provider, model, "success")

		if result != nil && result.Usage != nil {
			usage := result.Usage
			c.RecordLLMTokens(provider, model, usage.InputTokens, usage.OutputTokens)

			if c.costModel != nil {
				cost := c.costModel.Cost(provider, model, usage.InputTokens, usage.OutputTokens)
				c.RecordLLMCost(provider, model, cost)
			}
		}

		return result, nil
	}
}
