package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"helpdesk-hq/agentd/pkg/llm"
	"helpdesk-hq/agentd/pkg/ticket"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// fixedCost prices every call at a constant value.
type fixedCost struct {
	cost float64
}

func (f fixedCost) Cost(provider, model string, inputTokens, outputTokens int) float64 {
	return f.cost
}

func TestTrackTicketProcessing_AutoResolved(t *testing.T) {
	c := newTestCollector(t)

	fn := c.TrackTicketProcessing(func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
		return &ticket.Result{Outcome: ticket.AutoResolved{Confidence: 0.92}}, nil
	})

	tk := &ticket.Ticket{ID: "TKT-1", Category: "billing_inquiry", Channel: "email"}
	if _, err := fn(context.Background(), tk); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	processed := c.ticketMetrics.processedTotal.WithLabelValues("billing_inquiry", "production", "email")
	if got := testutil.ToFloat64(processed); got != 1 {
		t.Errorf("Expected 1 processed, got %v", got)
	}
	resolved := c.ticketMetrics.resolvedAutoTotal.WithLabelValues("billing_inquiry", "high")
	if got := testutil.ToFloat64(resolved); got != 1 {
		t.Errorf("Expected 1 auto-resolved at high tier, got %v", got)
	}

	count, err := testutil.GatherAndCount(c.Registry(), "ai_agent_response_duration_milliseconds")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected duration observed, got %d series", count)
	}
}

func TestTrackTicketProcessing_EscalatedDefaultReason(t *testing.T) {
	c := newTestCollector(t)

	fn := c.TrackTicketProcessing(func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
		return &ticket.Result{Outcome: ticket.Escalated{}}, nil
	})

	if _, err := fn(context.Background(), &ticket.Ticket{ID: "TKT-2"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	escalated := c.ticketMetrics.escalatedTotal.WithLabelValues("general_inquiry", "unknown")
	if got := testutil.ToFloat64(escalated); got != 1 {
		t.Errorf("Expected escalation with reason unknown, got %v", got)
	}
}

func TestTrackTicketProcessing_DefaultLabels(t *testing.T) {
	c := newTestCollector(t)

	fn := c.TrackTicketProcessing(func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
		return &ticket.Result{}, nil // nil outcome is pending
	})

	if _, err := fn(context.Background(), &ticket.Ticket{ID: "TKT-3"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	processed := c.ticketMetrics.processedTotal.WithLabelValues("general_inquiry", "production", "web")
	if got := testutil.ToFloat64(processed); got != 1 {
		t.Errorf("Expected defaults general_inquiry/production/web, got %v", got)
	}
}

func TestTrackTicketProcessing_EnvironmentFromContext(t *testing.T) {
	c := newTestCollector(t)

	fn := c.TrackTicketProcessing(func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
		return &ticket.Result{}, nil
	})

	ctx := ticket.WithEnvironment(context.Background(), "staging")
	if _, err := fn(ctx, &ticket.Ticket{ID: "TKT-4"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	processed := c.ticketMetrics.processedTotal.WithLabelValues("general_inquiry", "staging", "web")
	if got := testutil.ToFloat64(processed); got != 1 {
		t.Errorf("Expected staging environment label, got %v", got)
	}
}

func TestTrackTicketProcessing_Failure(t *testing.T) {
	c := newTestCollector(t)

	wantErr := errors.New("classifier unavailable")
	fn := c.TrackTicketProcessing(func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
		return nil, wantErr
	})

	_, err := fn(context.Background(), &ticket.Ticket{ID: "TKT-5", Category: "technical_support"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected wrapped function's error unchanged, got %v", err)
	}

	failed := c.ticketMetrics.failedTotal.WithLabelValues("technical_support", "web")
	if got := testutil.ToFloat64(failed); got != 1 {
		t.Errorf("Expected 1 failed, got %v", got)
	}

	// No success-path counters or duration on failure.
	processed, gErr := testutil.GatherAndCount(c.Registry(), "ai_agent_tickets_processed_total")
	if gErr != nil {
		t.Fatalf("Gather failed: %v", gErr)
	}
	if processed != 0 {
		t.Errorf("Expected no processed series after failure, got %d", processed)
	}
}

func TestTrackTicketProcessing_Concurrent(t *testing.T) {
	c := newTestCollector(t)

	fn := c.TrackTicketProcessing(func(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
		return &ticket.Result{Outcome: ticket.AutoResolved{Confidence: 0.9}}, nil
	})

	const goroutines = 20
	const perGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk := &ticket.Ticket{ID: "TKT-x", Category: "billing_inquiry"}
			for j := 0; j < perGoroutine; j++ {
				if _, err := fn(context.Background(), tk); err != nil {
					t.Errorf("Unexpected error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	processed := c.ticketMetrics.processedTotal.WithLabelValues("billing_inquiry", "production", "web")
	if got := testutil.ToFloat64(processed); got != goroutines*perGoroutine {
		t.Errorf("Expected exactly %d processed, got %v", goroutines*perGoroutine, got)
	}
}

func TestTrackLLMCall_Success(t *testing.T) {
	c := newTestCollector(t)
	c.SetCostModel(fixedCost{cost: 0.0049})

	fn := c.TrackLLMCall("anthropic", "claude-sonnet-4", func(ctx context.Context) (*llm.Result, error) {
		return &llm.Result{
			Response: "answer",
			Usage:    &llm.Usage{InputTokens: 150, OutputTokens: 300},
		}, nil
	})

	if _, err := fn(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	requests := c.llmMetrics.requestsTotal.WithLabelValues("anthropic", "claude-sonnet-4", "success")
	if got := testutil.ToFloat64(requests); got != 1 {
		t.Errorf("Expected 1 success request, got %v", got)
	}
	input := c.llmMetrics.tokensTotal.WithLabelValues("anthropic", "claude-sonnet-4", "input")
	if got := testutil.ToFloat64(input); got != 150 {
		t.Errorf("Expected 150 input tokens, got %v", got)
	}
	cost := c.llmMetrics.costDollars.WithLabelValues("anthropic", "claude-sonnet-4")
	if got := testutil.ToFloat64(cost); got != 0.0049 {
		t.Errorf("Expected cost 0.0049, got %v", got)
	}
}

func TestTrackLLMCall_NoUsageSkipsTokensAndCost(t *testing.T) {
	c := newTestCollector(t)
	c.SetCostModel(fixedCost{cost: 1.0})

	fn := c.TrackLLMCall("anthropic", "claude-sonnet-4", func(ctx context.Context) (*llm.Result, error) {
		return &llm.Result{Response: "answer"}, nil
	})

	if _, err := fn(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tokens, err := testutil.GatherAndCount(c.Registry(), "ai_agent_llm_tokens_total")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if tokens != 0 {
		t.Errorf("Expected no token series without usage, got %d", tokens)
	}
}

func TestTrackLLMCall_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errorType string
	}{
		{
			name:      "typed rate limit",
			err:       &llm.Error{Kind: llm.KindRateLimit, Provider: "anthropic", Err: errors.New("429")},
			errorType: "rate_limit",
		},
		{
			name:      "context canceled",
			err:       context.Canceled,
			errorType: "canceled",
		},
		{
			name:      "deadline exceeded",
			err:       context.DeadlineExceeded,
			errorType: "timeout",
		},
		{
			name:      "untyped",
			err:       errors.New("boom"),
			errorType: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCollector(t)

			fn := c.TrackLLMCall("anthropic", "claude-sonnet-4", func(ctx context.Context) (*llm.Result, error) {
				return nil, tt.err
			})

			_, err := fn(context.Background())
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error unchanged, got %v", err)
			}

			requests := c.llmMetrics.requestsTotal.WithLabelValues("anthropic", "claude-sonnet-4", "error")
			if got := testutil.ToFloat64(requests); got != 1 {
				t.Errorf("Expected 1 error request, got %v", got)
			}
			errSeries := c.llmMetrics.errorsTotal.WithLabelValues("anthropic", tt.errorType)
			if got := testutil.ToFloat64(errSeries); got != 1 {
				t.Errorf("Expected 1 %s error, got %v", tt.errorType, got)
			}
		})
	}
}

func TestTrackLLMCall_NoDurationOnFailure(t *testing.T) {
	c := newTestCollector(t)

	fn := c.TrackLLMCall("anthropic", "claude-sonnet-4", func(ctx context.Context) (*llm.Result, error) {
		return nil, context.Canceled
	})

	if _, err := fn(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	// Latency is a success-path observation only; a cancelled or failed
	// attempt must not contribute a partial duration.
	count, err := testutil.GatherAndCount(c.Registry(), "ai_agent_llm_response_duration_seconds")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no latency series after a failed call, got %d", count)
	}
}

func TestTrackLLMCall_NilCostModel(t *testing.T) {
	c := newTestCollector(t)

	fn := c.TrackLLMCall("anthropic", "claude-sonnet-4", func(ctx context.Context) (*llm.Result, error) {
		return &llm.Result{Usage: &llm.Usage{InputTokens: 10, OutputTokens: 10}}, nil
	})

	if _, err := fn(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cost, err := testutil.GatherAndCount(c.Registry(), "ai_agent_llm_api_cost_dollars")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if cost != 0 {
		t.Errorf("Expected no cost series without a cost model, got %d", cost)
	}
}
