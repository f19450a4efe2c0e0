package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"helpdesk-hq/agentd/pkg/cli"
	"helpdesk-hq/agentd/pkg/config"
	"helpdesk-hq/agentd/pkg/processing/costs"
	"helpdesk-hq/agentd/pkg/queue"
	"helpdesk-hq/agentd/pkg/server"
	"helpdesk-hq/agentd/pkg/storage"
	"helpdesk-hq/agentd/pkg/telemetry/health"
	"helpdesk-hq/agentd/pkg/telemetry/logging"
	"helpdesk-hq/agentd/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the support agent service",
	Long: `Start the support agent service with the specified configuration.

The server listens on the configured address, accepts support tickets on the
REST API, and exposes health and Prometheus metrics endpoints.

Examples:
  # Start with default config
  agentd run

  # Start with custom config
  agentd run --config /etc/agentd/config.yaml

  # Override listen address
  agentd run --listen 0.0.0.0:8000

  # Validate config without starting the server
  agentd run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError(cfgFile, fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	// Initialize logging based on config
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		RedactPII: cfg.Telemetry.Logging.RedactPII,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cost accounting: the calculator backs both the LLM cost counter
	// and is hot-swapped on config reloads.
	calculator := costs.NewCalculator(costs.TableFromConfig(&cfg.Costs))

	// Metrics
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
		collector.SetCostModel(calculator)
		collector.SetDeploymentInfo(Version, GitCommit, BuildDate)
		collector.UpdateBudgets(&cfg.Costs)
		fmt.Printf("✓ Metrics enabled at %s\n", cfg.Telemetry.Metrics.Path)
	}

	// Health checks
	checker := health.New(0)
	checker.SetInfo(Version, cfg.App.Environment)
	checker.RegisterCheck(health.CheckLLMAPI, func(ctx context.Context) error {
		for _, provider := range config.GetConfig().Providers {
			if provider.APIKey != "" {
				return nil
			}
		}
		return fmt.Errorf("no provider API keys configured")
	})

	// Queue store (connects lazily)
	queues, err := queue.New(&cfg.Redis)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer queues.Close()
	checker.RegisterCheck(health.CheckRedis, queues.Ping)
	fmt.Println("✓ Queue store initialized")

	// Database pool (optional; the agent runs without persistence)
	var pool *storage.Pool
	if cfg.Database.URL != "" {
		pool, err = storage.New(ctx, &cfg.Database)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer pool.Close()
		checker.RegisterCheck(health.CheckDatabase, pool.Ping)
		fmt.Println("✓ Database pool initialized")
	} else {
		slog.Warn("no database configured, connection gauges disabled")
	}

	// Periodic gauge refresh
	if collector != nil {
		var statsFn func() metrics.PoolStats
		if pool != nil {
			statsFn = func() metrics.PoolStats { return pool.Stat() }
		}
		costsFn := func() *config.CostsConfig { return &config.GetConfig().Costs }

		scheduler := metrics.NewScheduler(collector, queues, statsFn, costsFn)
		if err := scheduler.Start(ctx, cfg.Telemetry.Refresh); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer scheduler.Stop()
	}

	// Config reloads push fresh pricing and budgets without a restart
	watcher, err := config.NewWatcher(cfgFile, logger.Slog())
	if err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		go func() {
			err := watcher.Watch(ctx, func(newCfg *config.Config) {
				calculator.UpdatePricing(costs.TableFromConfig(&newCfg.Costs))
				if collector != nil {
					collector.UpdateBudgets(&newCfg.Costs)
				}
			})
			if err != nil {
				slog.Warn("config watcher stopped", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	srv := server.NewServer(cfg, collector, checker, server.BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})

	fmt.Println()
	fmt.Printf("✓ Listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	fmt.Println("\nPress Ctrl+C to stop")

	// Start blocks until a shutdown signal, context cancellation, or a
	// server error.
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf("%s v%s\n", cfg.App.Name, Version)
	fmt.Printf("Environment: %s\n", cfg.App.Environment)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")
}
