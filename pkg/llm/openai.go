package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sitesmith/sitesmith/pkg/logging"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	httpClient *http.Client
	logger     *logging.Logger
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint. The
// request timeout bounds a single attempt; the caller's context bounds the
// whole call including retries.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *OpenAIClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &OpenAIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.GetLogger(),
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends a chat completion request, retrying transient failures
// (rate limits, 5xx, network errors) with exponential backoff. Auth and
// client errors fail immediately.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var lastErr error
	backoff := time.Second
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Logf("llm: retrying after error (attempt %d/%d): %v", attempt, c.maxRetries, lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		content, err := c.doRequest(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("llm: retries exhausted: %w", lastErr)
}

func (c *OpenAIClient) doRequest(ctx context.Context, req CompletionRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    req.messages(),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", ErrRateLimited, strings.TrimSpace(string(data)))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("llm: server error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("llm: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("llm: api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Choices[0].Message.Content, nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if strings.Contains(err.Error(), "authentication failed") {
		return false
	}
	if strings.Contains(err.Error(), "unexpected status 4") {
		return false
	}
	// Rate limits, server errors, timeouts and transport errors are all
	// worth another attempt.
	return true
}
