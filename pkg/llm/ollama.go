package llm

import (
	"context"
	"fmt"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// OllamaClient runs completions against a local Ollama daemon. Selected by
// prefixing the configured model with "ollama:", e.g. "ollama:qwen2.5-coder".
type OllamaClient struct {
	model string
}

// NewOllamaClient creates a client for the given model name (without the
// "ollama:" prefix).
func NewOllamaClient(model string) *OllamaClient {
	return &OllamaClient{model: model}
}

// Complete sends a non-streaming chat request to the local Ollama daemon.
func (c *OllamaClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return "", fmt.Errorf("could not create ollama client: %w", err)
	}

	msgs := req.messages()
	ollamaMessages := make([]ollama.Message, len(msgs))
	for i, msg := range msgs {
		ollamaMessages[i] = ollama.Message{Role: msg.Role, Content: msg.Content}
	}

	stream := false
	chatReq := &ollama.ChatRequest{
		Model:    c.model,
		Messages: ollamaMessages,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": req.Temperature,
		},
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}

	var content strings.Builder
	err = client.Chat(ctx, chatReq, func(res ollama.ChatResponse) error {
		content.WriteString(res.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat request failed: %w", err)
	}
	if strings.TrimSpace(content.String()) == "" {
		return "", ErrEmptyResponse
	}
	return content.String(), nil
}

// IsOllamaModel checks if the given model name selects the Ollama provider.
func IsOllamaModel(modelName string) bool {
	return strings.HasPrefix(strings.ToLower(modelName), "ollama:")
}
