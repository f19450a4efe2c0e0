// Package costs calculates LLM API costs from token usage.
//
// The calculator holds a nested price table keyed by provider then model,
// with rates stored as dollars per token (pre-divided from the published
// per-million-token rates so the multiply-and-sum arithmetic stays exact
// for round-number token counts).
//
// Unknown (provider, model) pairs cost 0.0 and log a warning rather than
// failing: metrics and billing must never block on an unpriced model.
//
// The table is hot-swappable via UpdatePricing, which the config watcher
// calls when pricing overrides change on disk.
package costs
