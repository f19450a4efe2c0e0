// Package metrics implements the Prometheus instrumentation layer for
// the support agent.
//
// All instruments live on an explicitly constructed Collector that owns
// its own prometheus.Registry; nothing registers against the client
// library's global registry. The Collector is injected into the
// instrumentation wrappers, the periodic updaters, and the HTTP server.
//
// Metric families use namespace "ai" and subsystem "agent", so the
// exported series are ai_agent_tickets_processed_total,
// ai_agent_llm_api_cost_dollars, and so on.
//
// Three kinds of recording flow through the Collector:
//
//   - Wrappers (TrackTicketProcessing, TrackLLMCall, HTTPMiddleware)
//     instrument operations inline and re-return errors unchanged.
//   - Periodic updaters (UpdateQueueDepth, UpdateDBConnections,
//     UpdateBudgets) refresh gauges when an external scheduler fires.
//   - Direct setters (SetDeploymentInfo) stamp static build metadata.
package metrics
