// Package telemetry groups the observability subsystems: structured
// logging with PII redaction, Prometheus metrics, and health checks.
package telemetry
