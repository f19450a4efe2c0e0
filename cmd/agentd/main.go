// Agentd is the AI customer support agent service.
//
// It exposes a REST API for ticket intake and provides:
//   - Prometheus instrumentation for the full ticket lifecycle
//   - LLM token and cost accounting per provider and model
//   - Queue depth and connection pool gauges refreshed on cron schedules
//   - Structured JSON logging with PII redaction
//
// Usage:
//
//	# Start the service with default configuration
//	agentd run
//
//	# Start with custom configuration file
//	agentd run --config /etc/agentd/config.yaml
//
//	# Initialize the support database schema
//	agentd initdb
//
//	# Validate a configuration file
//	agentd validate --config config.yaml
//
//	# Show version information
//	agentd version
package main

func main() {
	Execute()
}
