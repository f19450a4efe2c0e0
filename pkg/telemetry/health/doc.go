// Package health provides liveness and readiness checking for the
// agent's dependencies (database, ticket queue, LLM providers).
//
// Liveness (/health) answers "is the process running" and never touches
// dependencies. Readiness (/ready) runs every registered check
// concurrently with a per-check timeout and reports degraded when any
// dependency is down.
package health
