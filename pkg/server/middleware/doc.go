// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// Middleware functions are chained in a specific order:
//
//	handler = Recovery(RequestID(Logging(CORS(Timeout(handler)))))
//
// Order (innermost to outermost):
//  1. Timeout: Enforce per-request timeout
//  2. CORS: Add Cross-Origin Resource Sharing headers
//  3. Logging: Log request/response details
//  4. RequestID: Generate and propagate request ID
//  5. Recovery: Recover from panics
//
// RequestIDMiddleware generates a unique ID for each request (32 hex
// characters from crypto/rand), adds it to the context and the X-Request-ID
// response header, and the logging middleware includes it with every
// request log.
//
// RecoveryMiddleware catches panics in handlers and converts them to an
// HTTP 500 JSON error:
//
//	{"error": "Internal server error", "message": "An unexpected error occurred"}
//
// The panic stack trace is logged but never exposed to clients.
//
// All middleware functions are safe for concurrent use.
package middleware
