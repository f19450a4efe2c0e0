package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic gauge updaters on cron schedules. The
// updaters themselves never self-schedule; this is the only component
// that triggers them.
type Scheduler struct {
	collector *Collector

	// queues feeds the queue depth refresh; nil skips that job
	queues QueueStore

	// stats produces a fresh pool snapshot per cycle; nil skips the job
	stats func() PoolStats

	// costs produces the current cost configuration per cycle, so a
	// config reload is picked up on the next tick
	costs func() *config.CostsConfig

	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a refresh scheduler. Nil collaborators disable
// their job (the dry-run mode starts without Redis or Postgres).
func NewScheduler(collector *Collector, queues QueueStore, stats func() PoolStats, costs func() *config.CostsConfig) *Scheduler {
	return &Scheduler{
		collector: collector,
		queues:    queues,
		stats:     stats,
		costs:     costs,
		cron:      cron.New(),
		logger:    slog.Default().With("component", "metrics.scheduler"),
	}
}

// Start validates the schedules, runs every enabled updater once so the
// gauges are populated before the first tick, and begins the cron loop.
// The scheduler stops itself when ctx is canceled.
//
// Schedules use standard cron syntax or @every intervals:
//   - "@every 30s"  - every 30 seconds
//   - "@daily"      - daily at midnight
//   - "0 3 * * *"   - daily at 3 AM
func (s *Scheduler) Start(ctx context.Context, refresh config.RefreshConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := []struct {
		name     string
		schedule string
		enabled  bool
		run      func()
	}{
		{
			name:     "queue_depth",
			schedule: refresh.QueueDepth,
			enabled:  s.queues != nil,
			run: func() {
				// Failure already logged by the updater; the cycle is skipped.
				_ = s.collector.UpdateQueueDepth(ctx, s.queues)
			},
		},
		{
			name:     "db_pool",
			schedule: refresh.DBPool,
			enabled:  s.stats != nil,
			run: func() {
				s.collector.UpdateDBConnections(s.stats())
			},
		},
		{
			name:     "budgets",
			schedule: refresh.Budgets,
			enabled:  s.costs != nil,
			run: func() {
				s.collector.UpdateBudgets(s.costs())
			},
		},
	}

	for _, job := range jobs {
		if !job.enabled || job.schedule == "" {
			s.logger.Info("refresh job disabled", "job", job.name)
			continue
		}

		if _, err := cron.ParseStandard(job.schedule); err != nil {
			return fmt.Errorf("invalid %s schedule %q: %w", job.name, job.schedule, err)
		}

		if _, err := s.cron.AddFunc(job.schedule, job.run); err != nil {
			return fmt.Errorf("scheduling %s refresh: %w", job.name, err)
		}

		// Populate the gauges before the first tick
		job.run()

		s.logger.Info("refresh job scheduled", "job", job.name, "schedule", job.schedule)
	}

	s.cron.Start()
	s.running = true

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("refresh scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}
