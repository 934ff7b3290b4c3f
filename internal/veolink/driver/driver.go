// Package driver defines the provider-agnostic completion contract the
// generation core calls through. Providers live in subpackages.
package driver

import "context"

// Driver is a single-attempt completion provider. Complete performs exactly
// one outbound request; retries, rate limiting, and credential rotation are
// the provider's or the operator's concern, never the caller's.
type Driver interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *Request) (*Response, error)
	// Name returns the driver identifier (e.g., "gemini").
	Name() string
}

// ResponseFormat specifies the expected reply format.
type ResponseFormat struct {
	Type       string      `json:"type"` // "text", "json_object", "json_schema"
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema carries an advisory output schema. Providers translate it into
// their native structured-output mechanism; none of them are trusted to
// enforce it (the reconciler validates every reply regardless).
type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// Usage contains token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Request is a provider-agnostic completion request. System carries the
// compiled instruction; User carries the short task message.
type Request struct {
	Model          string
	System         string
	User           string
	ResponseFormat *ResponseFormat
	Temperature    *float64
	MaxTokens      *int
}

// Response is a provider-agnostic completion response.
type Response struct {
	Text         string
	FinishReason string
	Usage        *Usage
}
