package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first problem found, or nil if the
// configuration is valid.
func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}
	if err := validateBusiness(&cfg.Business); err != nil {
		return err
	}
	if err := validateCosts(&cfg.Costs); err != nil {
		return err
	}
	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return err
	}
	return nil
}

func validateServer(cfg *ServerConfig) error {
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return fmt.Errorf("server.listen_address %q is not a valid host:port: %w",
			cfg.ListenAddress, err)
	}
	if cfg.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must not be negative")
	}
	if cfg.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must not be negative")
	}
	if cfg.MaxHeaderBytes < 0 {
		return fmt.Errorf("server.max_header_bytes must not be negative")
	}
	return nil
}

func validateBusiness(cfg *BusinessConfig) error {
	thresholds := map[string]float64{
		"business.confidence_threshold":   cfg.ConfidenceThreshold,
		"business.auto_resolve_threshold": cfg.AutoResolveThreshold,
		"business.escalation_threshold":   cfg.EscalationThreshold,
	}
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}
	return nil
}

func validateCosts(cfg *CostsConfig) error {
	for provider, models := range cfg.Pricing {
		for model, rates := range models {
			if rates.InputPerMTok < 0 || rates.OutputPerMTok < 0 {
				return fmt.Errorf("costs.pricing.%s.%s rates must not be negative",
					provider, model)
			}
		}
	}
	for category, amount := range cfg.Budgets {
		if amount < 0 {
			return fmt.Errorf("costs.budgets.%s must not be negative", category)
		}
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug, info, warn, error; got %q",
			cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be json or text; got %q",
			cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("telemetry.metrics.path must start with /; got %q",
			cfg.Metrics.Path)
	}

	if err := validateAscending("telemetry.metrics.response_duration_buckets",
		cfg.Metrics.ResponseDurationBuckets); err != nil {
		return err
	}
	if err := validateAscending("telemetry.metrics.llm_duration_buckets",
		cfg.Metrics.LLMDurationBuckets); err != nil {
		return err
	}

	return nil
}

// validateAscending verifies histogram bucket boundaries are strictly
// increasing; Prometheus rejects unordered buckets at registration time,
// this surfaces the mistake at config load instead.
func validateAscending(name string, buckets []float64) error {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return fmt.Errorf("%s must be strictly ascending: bucket %d (%v) <= bucket %d (%v)",
				name, i, buckets[i], i-1, buckets[i-1])
		}
	}
	return nil
}
