package technical

import (
	"math"

	"ai-trader/internal/ta"
	"ai-trader/internal/types"
)

// Score thresholds on the clamped rule total.
const (
	buyThreshold  = 0.15
	sellThreshold = -0.15
)

// Score runs the additive rule table over an indicator set and returns the
// call with its confidence (|score| rounded to 4 places).
func Score(ind types.IndicatorSet) (types.SignalType, float64) {
	score := 0.0

	switch {
	case ind.RSI < 30:
		score += 0.3
	case ind.RSI < 40:
		score += 0.1
	case ind.RSI > 70:
		score -= 0.3
	case ind.RSI > 60:
		score -= 0.1
	}

	if ind.MACDHistogram > 0 {
		score += math.Min(0.3, ind.MACDHistogram*10)
	} else {
		score += math.Max(-0.3, ind.MACDHistogram*10)
	}

	if ind.BBUpper > ind.BBLower && ind.CurrentPrice > 0 {
		if width := ind.BBUpper - ind.BBLower; width > 0 {
			pos := (ind.CurrentPrice - ind.BBLower) / width
			if pos < 0.2 {
				score += 0.2
			} else if pos > 0.8 {
				score -= 0.2
			}
		}
	}

	if ind.SMA20 > 0 && ind.SMA50 > 0 {
		if ind.SMA20 > ind.SMA50 {
			score += 0.15
		} else {
			score -= 0.15
		}
	}

	if ind.EMA12 > 0 && ind.EMA26 > 0 {
		if ind.EMA12 > ind.EMA26 {
			score += 0.1
		} else {
			score -= 0.1
		}
	}

	// volume amplifies or damps whatever direction is already there
	if ind.VolumeRatio > 1.5 {
		score *= 1.2
	} else if ind.VolumeRatio < 0.5 {
		score *= 0.8
	}

	score = ta.Clamp(score, -1, 1)

	signal := types.Hold
	if score > buyThreshold {
		signal = types.Buy
	} else if score < sellThreshold {
		signal = types.Sell
	}
	return signal, ta.Round(math.Min(1, math.Abs(score)), 4)
}
