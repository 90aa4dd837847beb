// Package llm sends single-turn prompts to a hosted model and returns
// JSON checked against a schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output for a prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is one system prompt plus one user prompt. The coach never needs
// a conversation, so there is no message history.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the provider for JSON and validates the
	// reply against it. Without a schema Content holds the raw text.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// StopReason is why the model stopped, normalized across providers.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a model reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
	Stop    StopReason
}

// Usage counts the tokens of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// reply turns raw provider text into a Response. A schema-bound reply
// that was cut off is reported as truncated rather than as invalid JSON.
func reply(provider string, req Request, text string, usage Usage, model string, stop StopReason) (*Response, error) {
	content := json.RawMessage(text)
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &Error{Kind: KindTruncated, Provider: provider, Content: content}
		}
		if err := req.Schema.Validate(content); err != nil {
			return nil, &Error{Kind: KindInvalidResponse, Provider: provider, Content: content, Err: err}
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, Stop: stop}, nil
}

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "debrief".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
