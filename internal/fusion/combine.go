package fusion

import (
	"fmt"
	"math"

	"ai-trader/internal/ta"
	"ai-trader/internal/types"
)

// Stage weights of the final vote.
const (
	TechnicalWeight = 0.45
	SentimentWeight = 0.20
	ReasoningWeight = 0.35
)

// Final decision thresholds on the weighted score.
const (
	buyThreshold  = 0.3
	sellThreshold = -0.3
)

// Votes are the per-stage inputs to the final decision.
type Votes struct {
	TechSignal          types.SignalType
	TechConfidence      float64
	SentimentScore      float64
	ReasoningSignal     types.SignalType
	ReasoningConfidence float64
}

// Decision is the outcome of Combine.
type Decision struct {
	Signal     types.SignalType
	Confidence float64
	Score      float64
}

// Combine weights the three stages into one call. It is a pure function of its votes.
func Combine(v Votes) Decision {
	score := TechnicalWeight*v.TechSignal.Direction()*v.TechConfidence +
		SentimentWeight*v.SentimentScore +
		ReasoningWeight*v.ReasoningSignal.Direction()*v.ReasoningConfidence

	signal := types.Hold
	if score > buyThreshold {
		signal = types.Buy
	} else if score < sellThreshold {
		signal = types.Sell
	}
	return Decision{
		Signal:     signal,
		Confidence: ta.Round(math.Min(1, math.Abs(score)), 4),
		Score:      score,
	}
}

// Degraded is the per-symbol result used when a batch entry fails.
func Degraded(symbol string) types.TradingSignal {
	return types.TradingSignal{
		Symbol:           symbol,
		SignalType:       types.Hold,
		Confidence:       0,
		Reasoning:        fmt.Sprintf("Error generating signal for %s.", symbol),
		TechnicalSummary: "Unavailable due to error.",
		SentimentSummary: "Unavailable due to error.",
		RiskLevel:        types.RiskHigh,
	}
}

func technicalSummary(ind types.IndicatorSet, v Votes) string {
	return fmt.Sprintf("RSI: %.1f, MACD Histogram: %.4f, SMA20: %.2f, SMA50: %.2f, Technical signal: %s (confidence: %.2f)",
		ind.RSI, ind.MACDHistogram, ind.SMA20, ind.SMA50, v.TechSignal, v.TechConfidence)
}

func sentimentSummary(agg types.AggregateSentiment) string {
	return fmt.Sprintf("Overall sentiment: %s (score: %.2f)", agg.Label, agg.Score)
}

func reasoningSummary(symbol string, agg types.AggregateSentiment, v Votes, d Decision) string {
	return fmt.Sprintf("Combined analysis for %s: technical=%s(%.2f), sentiment=%s(%.2f), LLM=%s(%.2f). Weighted score: %.4f.",
		symbol, v.TechSignal, v.TechConfidence, agg.Label, agg.Score, v.ReasoningSignal, v.ReasoningConfidence, d.Score)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
