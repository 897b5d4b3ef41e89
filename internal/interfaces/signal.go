package interfaces

import (
	"context"

	"ai-trader/internal/types"
)

// SignalService is the public surface of the signal pipeline.
type SignalService interface {
	Analyze(ctx context.Context, symbol string, candles []types.Candle, articles ...types.Article) (types.TradingSignal, error)
	Generate(ctx context.Context, symbols []string) ([]types.TradingSignal, error)
	ClassifySentiment(ctx context.Context, articles []types.Article) ([]types.ArticleSentiment, error)
	AggregateSentiment(ctx context.Context, articles []types.Article) (types.AggregateSentiment, error)
}
