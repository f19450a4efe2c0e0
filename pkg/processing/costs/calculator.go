package costs

import (
	"log/slog"
	"sync"

	"helpdesk-hq/agentd/pkg/config"
)

const tokensPerMillion = 1_000_000

// Rates contains per-token pricing for a single model in USD.
type Rates struct {
	// Input is the cost per input token.
	Input float64

	// Output is the cost per output token.
	Output float64
}

// Table maps provider -> model -> per-token rates.
type Table map[string]map[string]Rates

// DefaultTable returns the built-in price table (published rates as of
// Dec 2024, per million tokens):
//
//	anthropic/claude-sonnet-4   $3 in  / $15 out
//	anthropic/claude-haiku      $0.25  / $1.25
//	openai/gpt-4                $30    / $60
//	openai/gpt-3.5-turbo        $0.50  / $1.50
func DefaultTable() Table {
	return Table{
		"anthropic": {
			"claude-sonnet-4": {Input: 3.0 / tokensPerMillion, Output: 15.0 / tokensPerMillion},
			"claude-haiku":    {Input: 0.25 / tokensPerMillion, Output: 1.25 / tokensPerMillion},
		},
		"openai": {
			"gpt-4":         {Input: 30.0 / tokensPerMillion, Output: 60.0 / tokensPerMillion},
			"gpt-3.5-turbo": {Input: 0.5 / tokensPerMillion, Output: 1.5 / tokensPerMillion},
		},
	}
}

// TableFromConfig builds a price table from the built-in defaults plus
// any per-million-token overrides in the configuration. Overrides are
// divided down to per-token rates at load time.
func TableFromConfig(cfg *config.CostsConfig) Table {
	table := DefaultTable()
	if cfg == nil {
		return table
	}

	for provider, models := range cfg.Pricing {
		if table[provider] == nil {
			table[provider] = make(map[string]Rates)
		}
		for model, rates := range models {
			table[provider][model] = Rates{
				Input:  rates.InputPerMTok / tokensPerMillion,
				Output: rates.OutputPerMTok / tokensPerMillion,
			}
		}
	}

	return table
}

// Calculator computes LLM API costs from token usage. It is safe for
// concurrent use and supports hot-reload of the price table.
type Calculator struct {
	mu     sync.RWMutex
	table  Table
	logger *slog.Logger
}

// NewCalculator creates a calculator using the given price table.
// A nil table uses the built-in defaults.
func NewCalculator(table Table) *Calculator {
	if table == nil {
		table = DefaultTable()
	}
	return &Calculator{
		table:  table,
		logger: slog.Default().With("component", "costs"),
	}
}

// Cost returns the dollar cost of a call that consumed inputTokens and
// outputTokens against the named provider and model.
//
// Unknown (provider, model) pairs log a warning and cost 0.0; an
// unpriced model never blocks metrics. No rounding is applied at this
// layer.
func (c *Calculator) Cost(provider, model string, inputTokens, outputTokens int) float64 {
	c.mu.RLock()
	models, ok := c.table[provider]
	var rates Rates
	if ok {
		rates, ok = models[model]
	}
	c.mu.RUnlock()

	if !ok {
		c.logger.Warn("unknown pricing, costing call at zero",
			"provider", provider,
			"model", model,
		)
		return 0.0
	}

	return float64(inputTokens)*rates.Input + float64(outputTokens)*rates.Output
}

// UpdatePricing replaces the price table. Safe to call while the
// calculator is in use; in-flight Cost calls complete against the old
// table.
func (c *Calculator) UpdatePricing(table Table) {
	if table == nil {
		return
	}
	c.mu.Lock()
	c.table = table
	c.mu.Unlock()

	c.logger.Info("price table updated", "providers", len(table))
}
