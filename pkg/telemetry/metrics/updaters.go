package metrics

import (
	"context"
	"fmt"

	"helpdesk-hq/agentd/pkg/config"
)

// QueueStore exposes the per-priority depth of the ticket queues.
// Implemented by the Redis-backed queue store.
type QueueStore interface {
	// Depths returns pending ticket counts keyed by priority
	// ("high", "medium", "low").
	Depths(ctx context.Context) (map[string]int64, error)
}

// PoolStats is the view of database pool state consumed by the
// connection gauges. *pgxpool.Stat satisfies it directly.
type PoolStats interface {
	AcquiredConns() int32
	IdleConns() int32
	MaxConns() int32
}

// UpdateQueueDepth refreshes the queue_depth gauges from the store.
// A read failure logs, leaves every gauge at its previous value, and
// skips the whole cycle: stale depths are preferable to a partial
// refresh that mixes two snapshots.
func (c *Collector) UpdateQueueDepth(ctx context.Context, store QueueStore) error {
	if !c.config.Enabled {
		return nil
	}

	depths, err := store.Depths(ctx)
	if err != nil {
		c.logger.Warn("queue depth refresh failed, keeping previous values", "error", err)
		return fmt.Errorf("reading queue depths: %w", err)
	}

	for priority, depth := range depths {
		c.SetQueueDepth(priority, depth)
	}

	return nil
}

// UpdateDBConnections refreshes the connection pool gauges from a pool
// stats snapshot.
func (c *Collector) UpdateDBConnections(stats PoolStats) {
	if !c.config.Enabled {
		return
	}

	c.SetDBConnections(stats.AcquiredConns(), stats.IdleConns(), stats.MaxConns())
}

// UpdateBudgets refreshes the budget and savings gauges from the
// configured cost table. These are configuration constants, not live
// billing data; the gauges exist so dashboards can plot spend against
// budget without a billing integration.
func (c *Collector) UpdateBudgets(costs *config.CostsConfig) {
	if !c.config.Enabled {
		return
	}

	budgets := costs.Budgets
	if budgets == nil {
		budgets = config.DefaultBudgets()
	}
	for category, amount := range budgets {
		c.SetBudget(category, amount)
	}

	gross := costs.MonthlySupportSavings
	c.SetSavings(gross, gross-costs.MonthlyOperationalCost)
}
