package metrics

import (
	"runtime"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// OpsMetrics tracks operational state refreshed by the periodic updaters
// plus static deployment metadata.
//
// Metrics:
//   - ai_agent_queue_depth: pending tickets per priority queue
//   - ai_agent_db_connections_active/idle/max: connection pool state
//   - ai_agent_cost_budget_monthly: configured budget per cost category
//   - ai_agent_support_agent_cost_savings_dollars: gross monthly savings
//   - ai_agent_monthly_cost_savings_dollars: net monthly savings
//   - ai_agent_deployment_info: build metadata, value always 1
type OpsMetrics struct {
	// Pending tickets per priority queue
	queueDepth *prometheus.GaugeVec

	// Connection pool state
	dbConnectionsActive prometheus.Gauge
	dbConnectionsIdle   prometheus.Gauge
	dbConnectionsMax    prometheus.Gauge

	// Configured monthly budget per cost category
	costBudgetMonthly *prometheus.GaugeVec

	// Savings gauges
	supportSavings prometheus.Gauge
	monthlySavings prometheus.Gauge

	// Build metadata carried in labels, value always 1. The Go client has
	// no Info metric type, so this is the conventional gauge encoding.
	deploymentInfo *prometheus.GaugeVec
}

// NewOpsMetrics creates and registers operational metrics with the provided registry.
func NewOpsMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *OpsMetrics {
	om := &OpsMetrics{
		queueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "queue_depth",
				Help:      "Number of tickets waiting in each priority queue",
			},
			[]string{"priority"},
		),

		dbConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "db_connections_active",
				Help:      "Number of database connections currently in use",
			},
		),

		dbConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "db_connections_idle",
				Help:      "Number of idle database connections in the pool",
			},
		),

		dbConnectionsMax: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "db_connections_max",
				Help:      "Configured maximum size of the database connection pool",
			},
		),

		costBudgetMonthly: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_budget_monthly",
				Help:      "Configured monthly budget in USD per cost category",
			},
			[]string{"category"},
		),

		supportSavings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "support_agent_cost_savings_dollars",
				Help:      "Estimated gross monthly savings versus human-only support in USD",
			},
		),

		monthlySavings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "monthly_cost_savings_dollars",
				Help:      "Net monthly savings after operational costs in USD",
			},
		),

		deploymentInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "deployment_info",
				Help:      "Build and deployment metadata, value is always 1",
			},
			[]string{"version", "commit_sha", "deployed_at", "go_version"},
		),
	}

	registry.MustRegister(
		om.queueDepth,
		om.dbConnectionsActive,
		om.dbConnectionsIdle,
		om.dbConnectionsMax,
		om.costBudgetMonthly,
		om.supportSavings,
		om.monthlySavings,
		om.deploymentInfo,
	)

	return om
}

// SetQueueDepth sets the pending-ticket gauge for one priority.
func (c *Collector) SetQueueDepth(priority string, depth int64) {
	if !c.config.Enabled {
		return
	}

	c.opsMetrics.queueDepth.WithLabelValues(priority).Set(float64(depth))
}

// SetDBConnections sets the connection pool gauges.
func (c *Collector) SetDBConnections(active, idle, max int32) {
	if !c.config.Enabled {
		return
	}

	c.opsMetrics.dbConnectionsActive.Set(float64(active))
	c.opsMetrics.dbConnectionsIdle.Set(float64(idle))
	c.opsMetrics.dbConnectionsMax.Set(float64(max))
}

// SetBudget sets the monthly budget gauge for one cost category.
func (c *Collector) SetBudget(category string, amount float64) {
	if !c.config.Enabled {
		return
	}

	c.opsMetrics.costBudgetMonthly.WithLabelValues(category).Set(amount)
}

// SetSavings sets the gross and net monthly savings gauges.
func (c *Collector) SetSavings(gross, net float64) {
	if !c.config.Enabled {
		return
	}

	c.opsMetrics.supportSavings.Set(gross)
	c.opsMetrics.monthlySavings.Set(net)
}

// SetDeploymentInfo stamps build metadata into the deployment_info
// series. Resetting first guarantees a single live series even when the
// metadata changes on a config reload.
func (c *Collector) SetDeploymentInfo(version, commitSHA, deployedAt string) {
	if !c.config.Enabled {
		return
	}

	c.opsMetrics.deploymentInfo.Reset()
	c.opsMetrics.deploymentInfo.
		WithLabelValues(version, commitSHA, deployedAt, runtime.Version()).
		Set(1)
}
