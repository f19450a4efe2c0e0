package config

import (
	"strings"
	"testing"
)

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	cfg := newConfig()
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}
}

func TestValidate_ListenAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"valid host:port", "127.0.0.1:8000", false},
		{"valid wildcard", "0.0.0.0:8000", false},
		{"valid port only", ":8000", false},
		{"missing port", "127.0.0.1", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.ListenAddress = tt.address
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Thresholds(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero is allowed", 0.0, false},
		{"one is allowed", 1.0, false},
		{"mid range", 0.85, false},
		{"negative", -0.1, true},
		{"above one", 1.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Business.AutoResolveThreshold = tt.value
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NegativePricing(t *testing.T) {
	cfg := validConfig()
	cfg.Costs.Pricing = map[string]map[string]ModelRates{
		"anthropic": {"claude-sonnet-4": {InputPerMTok: -3, OutputPerMTok: 15}},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected error for negative pricing")
	}
	if !strings.Contains(err.Error(), "anthropic") {
		t.Errorf("Expected error to name provider, got: %v", err)
	}
}

func TestValidate_NegativeBudget(t *testing.T) {
	cfg := validConfig()
	cfg.Costs.Budgets["llm_api"] = -100

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for negative budget")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry.Logging.Level = "verbose"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for unknown log level")
	}
}

func TestValidate_UnorderedBuckets(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry.Metrics.ResponseDurationBuckets = []float64{100, 50, 250}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected error for unordered buckets")
	}
	if !strings.Contains(err.Error(), "ascending") {
		t.Errorf("Expected ascending bucket error, got: %v", err)
	}
}
