package config

import "time"

// Default values for configuration fields.
const (
	// App defaults
	DefaultAppName     = "AI Customer Support Agent"
	DefaultEnvironment = "development"

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// CORS defaults
	DefaultCORSEnabled          = true
	DefaultCORSMaxAge           = 3600 // 1 hour
	DefaultCORSAllowCredentials = false

	// Provider defaults
	DefaultProviderTimeout = 30 * time.Second

	// LLM defaults
	DefaultPrimaryProvider  = "anthropic"
	DefaultPrimaryModel     = "claude-sonnet-4"
	DefaultFallbackProvider = "openai"
	DefaultFallbackModel    = "gpt-4"
	DefaultTemperature      = 0.3
	DefaultMaxTokens        = 2000

	// Database defaults
	DefaultDatabaseMaxConns       = int32(20)
	DefaultDatabaseMinConns       = int32(2)
	DefaultDatabaseConnectTimeout = 30 * time.Second

	// Redis defaults
	DefaultRedisURL       = "redis://localhost:6379/0"
	DefaultQueueHighKey   = "queue:high"
	DefaultQueueMediumKey = "queue:medium"
	DefaultQueueLowKey    = "queue:low"

	// Cost defaults
	DefaultMonthlyOperationalCost = 2500.0
	DefaultMonthlySupportSavings  = 4000.0

	// Business defaults
	DefaultConfidenceThreshold  = 0.75
	DefaultAutoResolveThreshold = 0.85
	DefaultEscalationThreshold  = 0.60

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultLoggingRedactPII = true
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "ai"
	DefaultMetricsSubsystem = "agent"

	// Refresh schedule defaults
	DefaultQueueDepthSchedule = "@every 30s"
	DefaultDBPoolSchedule     = "@every 15s"
	DefaultBudgetSchedule     = "@daily"
)

// DefaultBudgets returns the default monthly budget table in USD.
func DefaultBudgets() map[string]float64 {
	return map[string]float64{
		"llm_api":            1200,
		"aws_infrastructure": 800,
		"vector_db":          300,
		"monitoring":         200,
	}
}

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called automatically by LoadConfig.
func ApplyDefaults(cfg *Config) {
	// App
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = DefaultEnvironment
	}

	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// CORS
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if len(cfg.Server.CORS.AllowedMethods) == 0 {
		cfg.Server.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.Server.CORS.AllowedHeaders) == 0 {
		cfg.Server.CORS.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Providers
	for name, provider := range cfg.Providers {
		if provider.Timeout == 0 {
			provider.Timeout = DefaultProviderTimeout
			cfg.Providers[name] = provider
		}
	}

	// LLM
	if cfg.LLM.PrimaryProvider == "" {
		cfg.LLM.PrimaryProvider = DefaultPrimaryProvider
	}
	if cfg.LLM.PrimaryModel == "" {
		cfg.LLM.PrimaryModel = DefaultPrimaryModel
	}
	if cfg.LLM.FallbackProvider == "" {
		cfg.LLM.FallbackProvider = DefaultFallbackProvider
	}
	if cfg.LLM.FallbackModel == "" {
		cfg.LLM.FallbackModel = DefaultFallbackModel
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = DefaultTemperature
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = DefaultMaxTokens
	}

	// Database
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDatabaseMaxConns
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = DefaultDatabaseMinConns
	}
	if cfg.Database.ConnectTimeout == 0 {
		cfg.Database.ConnectTimeout = DefaultDatabaseConnectTimeout
	}

	// Redis
	if cfg.Redis.URL == "" {
		cfg.Redis.URL = DefaultRedisURL
	}
	if cfg.Redis.Queues.High == "" {
		cfg.Redis.Queues.High = DefaultQueueHighKey
	}
	if cfg.Redis.Queues.Medium == "" {
		cfg.Redis.Queues.Medium = DefaultQueueMediumKey
	}
	if cfg.Redis.Queues.Low == "" {
		cfg.Redis.Queues.Low = DefaultQueueLowKey
	}

	// Costs
	if cfg.Costs.Budgets == nil {
		cfg.Costs.Budgets = DefaultBudgets()
	}
	if cfg.Costs.MonthlyOperationalCost == 0 {
		cfg.Costs.MonthlyOperationalCost = DefaultMonthlyOperationalCost
	}
	if cfg.Costs.MonthlySupportSavings == 0 {
		cfg.Costs.MonthlySupportSavings = DefaultMonthlySupportSavings
	}

	// Business
	if cfg.Business.ConfidenceThreshold == 0 {
		cfg.Business.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if cfg.Business.AutoResolveThreshold == 0 {
		cfg.Business.AutoResolveThreshold = DefaultAutoResolveThreshold
	}
	if cfg.Business.EscalationThreshold == 0 {
		cfg.Business.EscalationThreshold = DefaultEscalationThreshold
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.ResponseDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.ResponseDurationBuckets = []float64{
			100, 250, 500, 1000, 2000, 3000, 5000, 10000, 15000, 20000, 30000,
		}
	}
	if len(cfg.Telemetry.Metrics.LLMDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.LLMDurationBuckets = []float64{
			0.5, 1, 2, 3, 5, 10, 15, 20, 30, 60,
		}
	}
	if cfg.Telemetry.Refresh.QueueDepth == "" {
		cfg.Telemetry.Refresh.QueueDepth = DefaultQueueDepthSchedule
	}
	if cfg.Telemetry.Refresh.DBPool == "" {
		cfg.Telemetry.Refresh.DBPool = DefaultDBPoolSchedule
	}
	if cfg.Telemetry.Refresh.Budgets == "" {
		cfg.Telemetry.Refresh.Budgets = DefaultBudgetSchedule
	}
}
