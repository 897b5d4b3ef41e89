package interfaces

import (
	"context"

	"ai-trader/internal/types"
)

// MarketData supplies recent daily candles when a caller gives none.
type MarketData interface {
	RecentCandles(ctx context.Context, symbol string) ([]types.Candle, error)
}
