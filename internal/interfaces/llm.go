package interfaces

import "context"

// Prompt is a single-turn completion request.
type Prompt struct {
	Model     string
	MaxTokens int
	Text      string
}

// LLMProvider sends one prompt and returns the model's text reply.
type LLMProvider interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
