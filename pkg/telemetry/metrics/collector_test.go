package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector(&config.MetricsConfig{Enabled: true}, nil)
}

func TestNewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	c := NewCollector(cfg, nil)

	if cfg.Namespace != "ai" {
		t.Errorf("Expected namespace ai, got %q", cfg.Namespace)
	}
	if cfg.Subsystem != "agent" {
		t.Errorf("Expected subsystem agent, got %q", cfg.Subsystem)
	}
	if len(cfg.ResponseDurationBuckets) == 0 || len(cfg.LLMDurationBuckets) == 0 {
		t.Error("Expected default histogram buckets")
	}
	if c.Registry() == nil {
		t.Error("Expected non-nil registry")
	}
}

func TestTicketCounters(t *testing.T) {
	c := newTestCollector(t)

	c.RecordTicketProcessed("billing_inquiry", "production", "web")
	c.RecordTicketProcessed("billing_inquiry", "production", "web")
	c.RecordAutoResolved("billing_inquiry", "high")
	c.RecordEscalated("billing_inquiry", "low_confidence")
	c.RecordTicketFailed("billing_inquiry", "web")

	processed := c.ticketMetrics.processedTotal.WithLabelValues("billing_inquiry", "production", "web")
	if got := testutil.ToFloat64(processed); got != 2 {
		t.Errorf("Expected 2 processed, got %v", got)
	}
	resolved := c.ticketMetrics.resolvedAutoTotal.WithLabelValues("billing_inquiry", "high")
	if got := testutil.ToFloat64(resolved); got != 1 {
		t.Errorf("Expected 1 auto-resolved, got %v", got)
	}
	escalated := c.ticketMetrics.escalatedTotal.WithLabelValues("billing_inquiry", "low_confidence")
	if got := testutil.ToFloat64(escalated); got != 1 {
		t.Errorf("Expected 1 escalated, got %v", got)
	}
	failed := c.ticketMetrics.failedTotal.WithLabelValues("billing_inquiry", "web")
	if got := testutil.ToFloat64(failed); got != 1 {
		t.Errorf("Expected 1 failed, got %v", got)
	}
}

func TestLLMCounters(t *testing.T) {
	c := newTestCollector(t)

	c.RecordLLMRequest("anthropic", "claude-sonnet-4", "success")
	c.RecordLLMTokens("anthropic", "claude-sonnet-4", 150, 300)
	c.RecordLLMCost("anthropic", "claude-sonnet-4", 0.0049)
	c.RecordLLMError("anthropic", "rate_limit")

	requests := c.llmMetrics.requestsTotal.WithLabelValues("anthropic", "claude-sonnet-4", "success")
	if got := testutil.ToFloat64(requests); got != 1 {
		t.Errorf("Expected 1 request, got %v", got)
	}
	input := c.llmMetrics.tokensTotal.WithLabelValues("anthropic", "claude-sonnet-4", "input")
	if got := testutil.ToFloat64(input); got != 150 {
		t.Errorf("Expected 150 input tokens, got %v", got)
	}
	output := c.llmMetrics.tokensTotal.WithLabelValues("anthropic", "claude-sonnet-4", "output")
	if got := testutil.ToFloat64(output); got != 300 {
		t.Errorf("Expected 300 output tokens, got %v", got)
	}
	cost := c.llmMetrics.costDollars.WithLabelValues("anthropic", "claude-sonnet-4")
	if got := testutil.ToFloat64(cost); got != 0.0049 {
		t.Errorf("Expected cost 0.0049, got %v", got)
	}
	errs := c.llmMetrics.errorsTotal.WithLabelValues("anthropic", "rate_limit")
	if got := testutil.ToFloat64(errs); got != 1 {
		t.Errorf("Expected 1 error, got %v", got)
	}
}

func TestDisabledCollectorIsNoOp(t *testing.T) {
	c := NewCollector(&config.MetricsConfig{Enabled: false}, nil)

	c.RecordTicketProcessed("billing_inquiry", "production", "web")
	c.RecordLLMRequest("anthropic", "claude-sonnet-4", "success")
	c.SetQueueDepth("high", 5)

	// Registration still happens; only series creation is gated.
	for _, name := range []string{
		"ai_agent_tickets_processed_total",
		"ai_agent_llm_api_requests_total",
		"ai_agent_queue_depth",
	} {
		count, err := testutil.GatherAndCount(c.Registry(), name)
		if err != nil {
			t.Fatalf("Gather failed: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected no %s series while disabled, got %d", name, count)
		}
	}
}

func TestGauges(t *testing.T) {
	c := newTestCollector(t)

	c.SetQueueDepth("high", 12)
	c.SetDBConnections(3, 7, 20)
	c.SetBudget("llm_api", 1200)
	c.SetSavings(4000, 1500)

	high := c.opsMetrics.queueDepth.WithLabelValues("high")
	if got := testutil.ToFloat64(high); got != 12 {
		t.Errorf("Expected queue depth 12, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.dbConnectionsActive); got != 3 {
		t.Errorf("Expected 3 active, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.dbConnectionsIdle); got != 7 {
		t.Errorf("Expected 7 idle, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.dbConnectionsMax); got != 20 {
		t.Errorf("Expected 20 max, got %v", got)
	}
	budget := c.opsMetrics.costBudgetMonthly.WithLabelValues("llm_api")
	if got := testutil.ToFloat64(budget); got != 1200 {
		t.Errorf("Expected budget 1200, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.supportSavings); got != 4000 {
		t.Errorf("Expected gross savings 4000, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.monthlySavings); got != 1500 {
		t.Errorf("Expected net savings 1500, got %v", got)
	}
}

func TestSetDeploymentInfo_SingleSeries(t *testing.T) {
	c := newTestCollector(t)

	c.SetDeploymentInfo("1.0.0", "abc123", "2026-08-01T00:00:00Z")
	c.SetDeploymentInfo("1.0.1", "def456", "2026-08-20T00:00:00Z")

	// Re-setting must not leave the old label set behind.
	count, err := testutil.GatherAndCount(c.Registry(), "ai_agent_deployment_info")
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 deployment_info series, got %d", count)
	}
}

func TestHandler_WellFormedBeforeObservation(t *testing.T) {
	c := newTestCollector(t)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Reading body: %v", err)
	}

	// Histograms register eagerly, so the exposition carries the family
	// even before any observation.
	if !strings.Contains(string(body), "ai_agent_response_duration_milliseconds") {
		t.Errorf("Expected response duration family in exposition, got:\n%s", body)
	}
}

func TestHandler_ExportsObservedSeries(t *testing.T) {
	c := newTestCollector(t)
	c.RecordTicketProcessed("technical_support", "production", "email")

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	want := `ai_agent_tickets_processed_total{category="technical_support",channel="email",environment="production"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("Expected series %q in exposition, got:\n%s", want, body)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	if !cl.Allow("a") || !cl.Allow("b") {
		t.Fatal("Expected first two label sets allowed")
	}
	if cl.Allow("c") {
		t.Error("Expected third label set rejected")
	}
	if !cl.Allow("a") {
		t.Error("Expected existing label set still allowed")
	}
	if cl.Count() != 2 {
		t.Errorf("Expected cardinality 2, got %d", cl.Count())
	}
}

func TestCardinalityOverflowFoldsToOther(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	c := NewCollector(cfg, nil)
	c.cardinalityLimiter = NewCardinalityLimiter(1)

	c.RecordLLMRequest("anthropic", "claude-sonnet-4", "success")
	c.RecordLLMRequest("anthropic", "claude-haiku", "success")

	folded := c.llmMetrics.requestsTotal.WithLabelValues("anthropic", "other", "success")
	if got := testutil.ToFloat64(folded); got != 1 {
		t.Errorf("Expected overflow folded into model=other, got %v", got)
	}
}
