package interfaces

import (
	"context"

	"ai-trader/internal/types"
)

// ReasoningRequest is everything the reasoning provider is shown for one symbol.
type ReasoningRequest struct {
	Symbol     string
	Indicators types.IndicatorSet
	Sentiment  types.SentimentContext
	Price      float64
}

// Reasoner produces a holistic assessment. It never fails: problems
// degrade to a deterministic default result.
type Reasoner interface {
	Assess(ctx context.Context, req ReasoningRequest) types.ReasoningResult
}
