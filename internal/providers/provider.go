// Package providers contains the text-generation clients the conversion
// pipeline calls into. Every client implements LLMClient so the pipeline can
// swap a hosted model for a deterministic stub in tests.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// LLMClient is the interface for chat/completion requests. Clients perform a
// single invocation per call; retrying a failed conversion is the
// orchestrator's responsibility, not the client's.
type LLMClient interface {
	// Chat sends a chat completion request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// Name returns the client identifier (e.g., "huggingface").
	Name() string
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ResponseFormat specifies structured output format for clients that
// support it.
type ResponseFormat struct {
	Type       string          `json:"type"` // "json_schema"
	JSONSchema json.RawMessage `json:"json_schema,omitempty"`
}

// ChatRequest is a request to a text-generation model.
type ChatRequest struct {
	// Required
	Messages []Message `json:"messages"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	// Generation parameters
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	// Structured output
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`

	// Request tracking
	RequestID string `json:"-"`
}

// ChatResult is the response from a model call.
type ChatResult struct {
	// Response content
	Content string `json:"content"`

	// Token counts (zero when the provider does not report usage)
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Timing
	ExecutionTime time.Duration `json:"execution_time"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID string `json:"request_id"`
}

// transientError marks a failure (network, timeout, rate limit, overloaded
// backend) that may succeed on an unmodified retry.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient wraps err so IsTransient reports true for it.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err (or anything it wraps) is a transient
// invocation failure eligible for retry.
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// retryableStatus reports whether an HTTP status from a model endpoint is
// worth retrying. 429 is rate limiting, 503 covers cold model loading on
// serverless backends, and the Cloudflare 52x range plus 5xx are backend
// trouble.
func retryableStatus(statusCode int) bool {
	switch statusCode {
	case 429, 503:
		return true
	case 520, 521, 522, 523, 524:
		return true
	default:
		return statusCode >= 500
	}
}
