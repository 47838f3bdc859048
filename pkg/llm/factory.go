package llm

import (
	"strings"
	"time"

	"github.com/sitesmith/sitesmith/pkg/config"
)

// NewFromConfig builds the completion client for the configured model.
// Models prefixed "ollama:" go to the local daemon; everything else is
// treated as an OpenAI-compatible endpoint.
func NewFromConfig(cfg *config.Config) Client {
	if IsOllamaModel(cfg.Model) {
		return NewOllamaClient(strings.TrimPrefix(cfg.Model, "ollama:"))
	}
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, timeout, cfg.MaxRetries)
}
