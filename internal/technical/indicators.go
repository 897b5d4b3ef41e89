package technical

import (
	"sort"

	"ai-trader/internal/ta"
	"ai-trader/internal/types"
)

const (
	rsiPeriod    = 14
	macdFast     = 12
	macdSlow     = 26
	macdSignal   = 9
	bbWindow     = 20
	bbDeviations = 2.0
)

// Compute builds the indicator set from candles in any order.
// Fewer than two candles return the neutral defaults.
func Compute(candles []types.Candle) types.IndicatorSet {
	if len(candles) < 2 {
		return types.NeutralIndicators()
	}

	sorted := make([]types.Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	closes := make([]float64, len(sorted))
	volumes := make([]float64, len(sorted))
	for i, c := range sorted {
		closes[i] = c.Close
		volumes[i] = c.Volume
	}
	price := closes[len(closes)-1]

	macd, signal, hist := ta.MACD(closes, macdFast, macdSlow, macdSignal)
	mid, upper, lower := ta.Bollinger(closes, bbWindow, bbDeviations)

	avgVolume := ta.Mean(volumes)
	volumeRatio := 1.0
	if avgVolume > 0 {
		volumeRatio = volumes[len(volumes)-1] / avgVolume
	}

	return types.IndicatorSet{
		RSI:           ta.OrDefault(ta.RSI(closes, rsiPeriod), 50),
		MACD:          ta.OrDefault(macd, 0),
		MACDSignal:    ta.OrDefault(signal, 0),
		MACDHistogram: ta.OrDefault(hist, 0),
		BBUpper:       ta.OrDefault(upper, 0),
		BBMiddle:      ta.OrDefault(mid, 0),
		BBLower:       ta.OrDefault(lower, 0),
		SMA20:         ta.OrDefault(ta.SMA(closes, 20), price),
		SMA50:         ta.OrDefault(ta.SMA(closes, 50), price),
		EMA12:         ta.OrDefault(ta.EMA(closes, 12), price),
		EMA26:         ta.OrDefault(ta.EMA(closes, 26), price),
		CurrentPrice:  price,
		AvgVolume:     avgVolume,
		VolumeRatio:   volumeRatio,
	}
}
