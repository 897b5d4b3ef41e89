package openai

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

const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// Provider calls the OpenAI chat completions API.
type Provider struct {
	client   *api.Client
	endpoint string
}

var _ interfaces.LLMProvider = (*Provider)(nil)

func New(apiKey, endpoint string, timeout time.Duration) *Provider {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Provider{
		client: api.NewClient(
			api.WithTimeout(timeout),
			api.WithHeader("Authorization", "Bearer "+apiKey),
			api.WithLogging(true),
		),
		endpoint: endpoint,
	}
}

func (p *Provider) Complete(ctx context.Context, prompt interfaces.Prompt) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
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
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	out := strings.TrimSpace(resp.Get("choices.0.message.content").String())
	if out == "" {
		return "", errors.New("openai response has no choices")
	}
	return out, nil
}
