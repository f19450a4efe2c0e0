package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that behavior.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := newConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention AGENT_SECTION_FIELD (e.g., AGENT_SERVER_LISTEN_ADDRESS) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// newConfig returns a Config with enabled-by-default booleans pre-set so
// that omitting the key in YAML does not silently disable the feature.
func newConfig() *Config {
	return &Config{
		Server: ServerConfig{
			CORS: CORSConfig{Enabled: DefaultCORSEnabled},
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{RedactPII: DefaultLoggingRedactPII},
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format AGENT_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// App overrides
	if val := os.Getenv("AGENT_APP_ENVIRONMENT"); val != "" {
		cfg.App.Environment = val
	}

	// Server overrides
	if val := os.Getenv("AGENT_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("AGENT_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("AGENT_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("AGENT_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Provider API keys
	applyProviderEnvOverrides(cfg, "anthropic")
	applyProviderEnvOverrides(cfg, "openai")

	// LLM overrides
	if val := os.Getenv("AGENT_LLM_PRIMARY_PROVIDER"); val != "" {
		cfg.LLM.PrimaryProvider = val
	}
	if val := os.Getenv("AGENT_LLM_PRIMARY_MODEL"); val != "" {
		cfg.LLM.PrimaryModel = val
	}
	if val := os.Getenv("AGENT_LLM_FALLBACK_PROVIDER"); val != "" {
		cfg.LLM.FallbackProvider = val
	}
	if val := os.Getenv("AGENT_LLM_FALLBACK_MODEL"); val != "" {
		cfg.LLM.FallbackModel = val
	}

	// Database overrides
	if val := os.Getenv("AGENT_DATABASE_URL"); val != "" {
		cfg.Database.URL = val
	}
	if val := os.Getenv("AGENT_DATABASE_MAX_CONNS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 32); err == nil {
			cfg.Database.MaxConns = int32(i)
		}
	}

	// Redis overrides
	if val := os.Getenv("AGENT_REDIS_URL"); val != "" {
		cfg.Redis.URL = val
	}

	// Business overrides
	if val := os.Getenv("AGENT_BUSINESS_AUTO_RESOLVE_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Business.AutoResolveThreshold = f
		}
	}
	if val := os.Getenv("AGENT_BUSINESS_ESCALATION_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Business.EscalationThreshold = f
		}
	}

	// Telemetry overrides
	if val := os.Getenv("AGENT_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("AGENT_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("AGENT_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("AGENT_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}

// applyProviderEnvOverrides applies API key overrides for a named provider
// from AGENT_PROVIDER_<NAME>_API_KEY.
func applyProviderEnvOverrides(cfg *Config, name string) {
	envName := "AGENT_PROVIDER_" + toEnvSegment(name) + "_API_KEY"
	val := os.Getenv(envName)
	if val == "" {
		return
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	provider := cfg.Providers[name]
	provider.APIKey = val
	if provider.Timeout == 0 {
		provider.Timeout = DefaultProviderTimeout
	}
	cfg.Providers[name] = provider
}

// toEnvSegment upper-cases a provider name for use in an environment
// variable name.
func toEnvSegment(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == '-' {
			c = '_'
		}
		out[i] = c
	}
	return string(out)
}
