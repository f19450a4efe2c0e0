package metrics

import (
	"context"
	"errors"
	"testing"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// fakeQueueStore returns canned depths or a canned error.
type fakeQueueStore struct {
	depths map[string]int64
	err    error
}

func (f *fakeQueueStore) Depths(ctx context.Context) (map[string]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.depths, nil
}

// fakePoolStats mimics a pgxpool.Stat snapshot.
type fakePoolStats struct {
	acquired, idle, max int32
}

func (f fakePoolStats) AcquiredConns() int32 { return f.acquired }
func (f fakePoolStats) IdleConns() int32     { return f.idle }
func (f fakePoolStats) MaxConns() int32      { return f.max }

func TestUpdateQueueDepth(t *testing.T) {
	c := newTestCollector(t)

	store := &fakeQueueStore{depths: map[string]int64{"high": 4, "medium": 9, "low": 23}}
	if err := c.UpdateQueueDepth(context.Background(), store); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for priority, want := range store.depths {
		gauge := c.opsMetrics.queueDepth.WithLabelValues(priority)
		if got := testutil.ToFloat64(gauge); got != float64(want) {
			t.Errorf("Expected %s depth %d, got %v", priority, want, got)
		}
	}
}

func TestUpdateQueueDepth_FailureKeepsPreviousValues(t *testing.T) {
	c := newTestCollector(t)

	good := &fakeQueueStore{depths: map[string]int64{"high": 4}}
	if err := c.UpdateQueueDepth(context.Background(), good); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bad := &fakeQueueStore{err: errors.New("connection refused")}
	if err := c.UpdateQueueDepth(context.Background(), bad); err == nil {
		t.Fatal("Expected error from failed refresh")
	}

	// The cycle was skipped: the gauge keeps its previous value.
	gauge := c.opsMetrics.queueDepth.WithLabelValues("high")
	if got := testutil.ToFloat64(gauge); got != 4 {
		t.Errorf("Expected stale depth 4 after failed refresh, got %v", got)
	}
}

func TestUpdateDBConnections(t *testing.T) {
	c := newTestCollector(t)

	c.UpdateDBConnections(fakePoolStats{acquired: 5, idle: 15, max: 20})

	if got := testutil.ToFloat64(c.opsMetrics.dbConnectionsActive); got != 5 {
		t.Errorf("Expected 5 active, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.dbConnectionsIdle); got != 15 {
		t.Errorf("Expected 15 idle, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.dbConnectionsMax); got != 20 {
		t.Errorf("Expected 20 max, got %v", got)
	}
}

func TestUpdateBudgets_Defaults(t *testing.T) {
	c := newTestCollector(t)

	costs := &config.CostsConfig{
		MonthlyOperationalCost: 2500,
		MonthlySupportSavings:  4000,
	}
	c.UpdateBudgets(costs)

	wantBudgets := map[string]float64{
		"llm_api":            1200,
		"aws_infrastructure": 800,
		"vector_db":          300,
		"monitoring":         200,
	}
	for category, want := range wantBudgets {
		gauge := c.opsMetrics.costBudgetMonthly.WithLabelValues(category)
		if got := testutil.ToFloat64(gauge); got != want {
			t.Errorf("Expected %s budget %v, got %v", category, want, got)
		}
	}

	if got := testutil.ToFloat64(c.opsMetrics.supportSavings); got != 4000 {
		t.Errorf("Expected gross savings 4000, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.monthlySavings); got != 1500 {
		t.Errorf("Expected net savings 1500, got %v", got)
	}
}

func TestUpdateBudgets_ConfiguredTable(t *testing.T) {
	c := newTestCollector(t)

	costs := &config.CostsConfig{
		Budgets:                map[string]float64{"llm_api": 2000},
		MonthlyOperationalCost: 3000,
		MonthlySupportSavings:  5000,
	}
	c.UpdateBudgets(costs)

	gauge := c.opsMetrics.costBudgetMonthly.WithLabelValues("llm_api")
	if got := testutil.ToFloat64(gauge); got != 2000 {
		t.Errorf("Expected configured budget 2000, got %v", got)
	}
	if got := testutil.ToFloat64(c.opsMetrics.monthlySavings); got != 2000 {
		t.Errorf("Expected net savings 2000, got %v", got)
	}
}
