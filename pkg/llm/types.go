// Package llm is the boundary to the generative text-completion service.
// Everything above this package treats the model as an untrusted external
// dependency: callers get back raw text and are responsible for validating
// and repairing it before use.
package llm

import (
	"context"
	"errors"
)

// Message represents a single message in a chat-like conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one generative call.
type CompletionRequest struct {
	System      string
	Prompt      string
	History     []Message
	Temperature float64
	MaxTokens   int
}

// Client is the minimal completion interface the pipeline depends on. The
// pipeline does not care about the provider; it needs system + user text in,
// text out, bounded by the caller's context.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

var (
	// ErrEmptyResponse indicates the provider returned no usable content.
	ErrEmptyResponse = errors.New("llm: empty response")
	// ErrRateLimited indicates the provider rejected the call with a rate
	// limit; retryable with backoff.
	ErrRateLimited = errors.New("llm: rate limited")
	// ErrAuth indicates missing or rejected credentials; not retryable.
	ErrAuth = errors.New("llm: authentication failed")
)

// messages flattens a request into the chat message list providers expect:
// system prompt first, then prior conversation turns, then the user prompt.
func (r CompletionRequest) messages() []Message {
	msgs := make([]Message, 0, len(r.History)+2)
	if r.System != "" {
		msgs = append(msgs, Message{Role: "system", Content: r.System})
	}
	msgs = append(msgs, r.History...)
	msgs = append(msgs, Message{Role: "user", Content: r.Prompt})
	return msgs
}
