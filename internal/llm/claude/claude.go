package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-trader/internal/api"
	"ai-trader/internal/interfaces"
	"ai-trader/internal/trace"
)

const (
	// DefaultEndpoint is the public Anthropic messages API.
	DefaultEndpoint = "https://api.anthropic.com/v1/messages"
	apiVersion      = "2023-06-01"
)

// Provider calls the Anthropic Messages API.
type Provider struct {
	client   *api.Client
	endpoint string
}

var _ interfaces.LLMProvider = (*Provider)(nil)

// New builds a provider. An empty endpoint uses DefaultEndpoint.
func New(apiKey, endpoint string, timeout time.Duration) *Provider {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Provider{
		client: api.NewClient(
			api.WithTimeout(timeout),
			api.WithHeader("x-api-key", apiKey),
			api.WithHeader("anthropic-version", apiVersion),
			api.WithLogging(true),
		),
		endpoint: endpoint,
	}
}

// Complete sends one user message and returns the concatenated text blocks.
func (p *Provider) Complete(ctx context.Context, prompt interfaces.Prompt) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	body := map[string]any{
		"model":      prompt.Model,
		"max_tokens": prompt.MaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt.Text},
		},
	}

	resp, err := p.client.POST(ctx, p.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}

	var parts []string
	for _, block := range resp.Get("content").Array() {
		if block.Get("type").String() == "text" {
			parts = append(parts, block.Get("text").String())
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", errors.New("claude response has no text content")
	}
	return text, nil
}
