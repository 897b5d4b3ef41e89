package interfaces

import (
	"context"

	"ai-trader/internal/types"
)

// SentimentClassifier labels each article. Implementations return one result
// per input, in order.
type SentimentClassifier interface {
	Classify(ctx context.Context, articles []types.Article) ([]types.ArticleSentiment, error)
}

// HeadlineSource finds recent news for a symbol.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string, max int) ([]types.Article, error)
}
