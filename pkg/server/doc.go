// Package server provides the HTTP API server for the support agent.
//
// This package ties together the API handlers, the middleware chain, and
// the telemetry endpoints, and manages server lifecycle including start,
// graceful shutdown, and OS signal handling (SIGTERM, SIGINT).
//
// # Basic Usage
//
//	cfg := config.GetConfig()
//
//	registry := prometheus.NewRegistry()
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)
//
//	checker := health.New(0)
//	checker.SetInfo(version, cfg.App.Environment)
//
//	srv := server.NewServer(cfg, collector, checker, server.BuildInfo{
//	    Version: version,
//	    Commit:  commit,
//	})
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
//   - GET / - Service banner
//   - GET /health - Liveness probe
//   - GET /ready - Readiness probe (checks database, Redis, LLM API)
//   - GET /version - Build information
//   - GET /metrics - Prometheus exposition (path configurable)
//   - POST /api/v1/tickets - Accept a support ticket
//   - GET /api/v1/tickets/{id} - Ticket details
//
// # Middleware Chain
//
// Requests pass through the following middleware (outermost to innermost):
//
//	Recovery -> RequestID -> Logging -> CORS -> Timeout -> HTTP metrics
//
// The HTTP metrics wrapper sits directly around the mux so the matched
// route pattern (not the raw URL path) becomes the endpoint label,
// keeping the label cardinality bounded.
//
// # Shutdown
//
// The server shuts down gracefully on SIGTERM/SIGINT or context
// cancellation: it stops accepting new connections, waits up to the
// configured shutdown timeout for in-flight requests, then closes.
package server
