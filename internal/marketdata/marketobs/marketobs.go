package marketobs

import (
	"context"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/trace"
	"ai-trader/internal/types"
)

// observableMarketData wraps a MarketData source with logging & tracing
type observableMarketData struct {
	name   string
	source interfaces.MarketData
}

// Compile-time interface check
var _ interfaces.MarketData = (*observableMarketData)(nil)

// Wrap wraps a market-data source with observability middleware
func Wrap(name string, source interfaces.MarketData) interfaces.MarketData {
	return &observableMarketData{name: name, source: source}
}

// RecentCandles fetches candles with observability
func (om *observableMarketData) RecentCandles(ctx context.Context, symbol string) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.RecentCandles")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching recent candles", "source", om.name, "symbol", symbol)

	candles, err := om.source.RecentCandles(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch candles", err, "source", om.name, "symbol", symbol)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Candles fetched successfully", "source", om.name, "symbol", symbol, "count", len(candles))
	return candles, nil
}
