package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for HTTP request IDs.
	RequestIDKey contextKey = "request_id"

	// TicketIDKey is the context key for ticket identifiers.
	TicketIDKey contextKey = "ticket_id"

	// CustomerIDKey is the context key for customer identifiers.
	CustomerIDKey contextKey = "customer_id"

	// CategoryKey is the context key for ticket categories.
	CategoryKey contextKey = "category"

	// ChannelKey is the context key for intake channels.
	ChannelKey contextKey = "channel"

	// ProviderKey is the context key for LLM provider names.
	ProviderKey contextKey = "provider"

	// ModelKey is the context key for LLM model names.
	ModelKey contextKey = "model"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithTicketID adds a ticket identifier to the context.
func WithTicketID(ctx context.Context, ticketID string) context.Context {
	return context.WithValue(ctx, TicketIDKey, ticketID)
}

// GetTicketID retrieves the ticket identifier from the context.
func GetTicketID(ctx context.Context) string {
	if ticketID, ok := ctx.Value(TicketIDKey).(string); ok {
		return ticketID
	}
	return ""
}

// WithCustomerID adds a customer identifier to the context.
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, CustomerIDKey, customerID)
}

// GetCustomerID retrieves the customer identifier from the context.
func GetCustomerID(ctx context.Context) string {
	if customerID, ok := ctx.Value(CustomerIDKey).(string); ok {
		return customerID
	}
	return ""
}

// WithCategory adds a ticket category to the context.
func WithCategory(ctx context.Context, category string) context.Context {
	return context.WithValue(ctx, CategoryKey, category)
}

// GetCategory retrieves the ticket category from the context.
func GetCategory(ctx context.Context) string {
	if category, ok := ctx.Value(CategoryKey).(string); ok {
		return category
	}
	return ""
}

// WithChannel adds an intake channel to the context.
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, ChannelKey, channel)
}

// GetChannel retrieves the intake channel from the context.
func GetChannel(ctx context.Context) string {
	if channel, ok := ctx.Value(ChannelKey).(string); ok {
		return channel
	}
	return ""
}

// WithProvider adds an LLM provider name to the context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// GetProvider retrieves the LLM provider name from the context.
func GetProvider(ctx context.Context) string {
	if provider, ok := ctx.Value(ProviderKey).(string); ok {
		return provider
	}
	return ""
}

// WithModel adds an LLM model name to the context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// GetModel retrieves the LLM model name from the context.
func GetModel(ctx context.Context) string {
	if model, ok := ctx.Value(ModelKey).(string); ok {
		return model
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	if ticketID := GetTicketID(ctx); ticketID != "" {
		fields = append(fields, "ticket_id", ticketID)
	}

	// Customer IDs are opaque identifiers, not PII, so they log as-is.
	if customerID := GetCustomerID(ctx); customerID != "" {
		fields = append(fields, "customer_id", customerID)
	}

	if category := GetCategory(ctx); category != "" {
		fields = append(fields, "category", category)
	}

	if channel := GetChannel(ctx); channel != "" {
		fields = append(fields, "channel", channel)
	}

	if provider := GetProvider(ctx); provider != "" {
		fields = append(fields, "provider", provider)
	}

	if model := GetModel(ctx); model != "" {
		fields = append(fields, "model", model)
	}

	return fields
}
