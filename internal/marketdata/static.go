package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/types"
)

// Static produces synthetic daily candles for demos and offline runs.
// The series is seeded by the symbol, so repeated calls agree.
type Static struct {
	days  int
	start int64
}

var _ interfaces.MarketData = (*Static)(nil)

// NewStatic returns days bars ending at the unix day start.
func NewStatic(days int, start int64) *Static {
	if days <= 0 {
		days = 90
	}
	return &Static{days: days, start: start}
}

func (s *Static) RecentCandles(_ context.Context, symbol string) ([]types.Candle, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	base := 100 + float64(h.Sum64()%900)
	cs := make([]types.Candle, 0, s.days)
	price := base
	for i := 0; i < s.days; i++ {
		open := price
		price = math.Max(1, price*(1+(rng.Float64()-0.48)*0.03))
		high := math.Max(open, price) * (1 + rng.Float64()*0.01)
		low := math.Min(open, price) * (1 - rng.Float64()*0.01)
		cs = append(cs, types.Candle{
			Time:   s.start - int64(s.days-1-i)*86400,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: 50000 + rng.Float64()*100000,
		})
	}
	return cs, nil
}

// None is the market-data source for deployments without one.
type None struct{}

var _ interfaces.MarketData = None{}

func (None) RecentCandles(context.Context, string) ([]types.Candle, error) {
	return []types.Candle{}, nil
}
