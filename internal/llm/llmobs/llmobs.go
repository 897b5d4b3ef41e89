package llmobs

import (
	"context"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/metrics"
	"ai-trader/internal/trace"
)

// observableProvider wraps an LLM provider with logging, tracing and call counts
type observableProvider struct {
	name     string
	provider interfaces.LLMProvider
	metrics  *metrics.Recorder
}

// Compile-time interface check
var _ interfaces.LLMProvider = (*observableProvider)(nil)

// Wrap wraps a provider with observability middleware
func Wrap(name string, provider interfaces.LLMProvider, rec *metrics.Recorder) interfaces.LLMProvider {
	return &observableProvider{
		name:     name,
		provider: provider,
		metrics:  rec,
	}
}

func (op *observableProvider) Complete(ctx context.Context, prompt interfaces.Prompt) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	// Skip(1) so the log points at the caller, not this wrapper
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"provider", op.name,
		"model", prompt.Model,
		"max_tokens", prompt.MaxTokens,
		"prompt_chars", len(prompt.Text),
	)

	out, err := op.provider.Complete(ctx, prompt)
	op.metrics.RecordLLMCall(err)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"provider", op.name,
			"model", prompt.Model,
		)
		return "", err
	}

	logger.DebugSkip(ctx, 1, "Completion received",
		"provider", op.name,
		"model", prompt.Model,
		"reply_chars", len(out),
	)
	return out, nil
}
