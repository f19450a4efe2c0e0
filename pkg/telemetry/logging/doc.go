// Package logging provides structured logging with PII redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Automatic redaction of customer PII (emails, phone numbers,
//     card numbers, API keys)
//   - Context-aware logging with request and ticket metadata
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    RedactPII: true,
//	})
//
//	logger.Info("ticket processed",
//	    "ticket_id", "TKT-123",
//	    "customer_email", "jane@example.com",  // Automatically redacted
//	    "duration_ms", 1234,
//	)
//
//	// Context-aware logger
//	ctx = logging.WithTicketID(ctx, "TKT-123")
//	logger.InfoContext(ctx, "escalating")  // Includes ticket_id automatically
//
// # PII Redaction
//
// Support tickets carry customer data, so redaction defaults on:
//
//   - Emails: user@example.com → u***@example.com
//   - Phone numbers: (555) 123-4567 → ***-***-****
//   - Credit cards: 4111-1111-1111-1111 → ****-****-****-****
//   - API keys: sk-abc123xyz → sk-***
package logging
