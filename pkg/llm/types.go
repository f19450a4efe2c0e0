// Package llm defines the result and error types for LLM API calls
// consumed by the instrumentation layer.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Usage contains token counts reported by the provider for one call.
type Usage struct {
	// InputTokens is the number of tokens in the prompt.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the number of tokens in the completion.
	OutputTokens int `json:"output_tokens"`
}

// Result is the outcome of one successful LLM call.
type Result struct {
	// Response is the completion text.
	Response string `json:"response"`

	// Usage contains the provider-reported token counts. Nil when the
	// provider did not report usage; token and cost metrics are skipped
	// in that case.
	Usage *Usage `json:"usage,omitempty"`
}

// ErrorKind classifies provider failures for the error-type metric label.
type ErrorKind string

const (
	KindRateLimit   ErrorKind = "rate_limit"
	KindTimeout     ErrorKind = "timeout"
	KindAuth        ErrorKind = "auth"
	KindServerError ErrorKind = "server_error"
	KindCanceled    ErrorKind = "canceled"
	KindUnknown     ErrorKind = "unknown"
)

// Error is a classified provider failure.
type Error struct {
	// Kind is the failure category.
	Kind ErrorKind

	// Provider is the provider that produced the failure.
	Provider string

	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify derives the error-type label for a failed call. Typed errors
// report their kind; context cancellation and deadline expiry map to
// "canceled" and "timeout"; anything else is "unknown". Cancellation is
// deliberately not special-cased beyond the label: it is recorded and
// re-raised like any other failure.
func Classify(err error) ErrorKind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnknown
}
