package reasoning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"ai-trader/internal/llm"
	"ai-trader/internal/ta"
	"ai-trader/internal/types"
)

// Fallback texts for missing reply fields
const (
	fallbackReasoning        = "Analysis completed."
	fallbackTechnicalSummary = "No technical summary available."
	fallbackSentimentSummary = "No sentiment summary available."
)

// Normalize validates a raw provider reply field by field. Out-of-set enums
// and uncastable targets are defaulted; an unparseable body or an uncastable
// confidence is an error.
func Normalize(reply string) (types.ReasoningResult, error) {
	body := llm.StripCodeFence(reply)
	if !gjson.Valid(body) {
		return types.ReasoningResult{}, errors.New("reply is not valid JSON")
	}
	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return types.ReasoningResult{}, errors.New("reply is not a JSON object")
	}

	confidence := 0.5
	if raw := doc.Get("confidence"); raw.Exists() {
		f, ok := llm.Float(raw)
		if !ok {
			return types.ReasoningResult{}, fmt.Errorf("confidence is not numeric: %s", raw.Raw)
		}
		confidence = ta.Clamp(f, 0, 1)
	}

	return types.ReasoningResult{
		Signal:           normalizeSignal(llm.Text(doc.Get("signal"), string(types.Hold))),
		Confidence:       confidence,
		Reasoning:        llm.Text(doc.Get("reasoning"), fallbackReasoning),
		RiskLevel:        normalizeRisk(llm.Text(doc.Get("risk_level"), string(types.RiskMedium))),
		PriceTarget:      optionalFloat(doc.Get("price_target")),
		StopLoss:         optionalFloat(doc.Get("stop_loss")),
		TechnicalSummary: llm.Text(doc.Get("technical_summary"), fallbackTechnicalSummary),
		SentimentSummary: llm.Text(doc.Get("sentiment_summary"), fallbackSentimentSummary),
	}, nil
}

func normalizeSignal(s string) types.SignalType {
	switch v := types.SignalType(strings.ToUpper(strings.TrimSpace(s))); v {
	case types.Buy, types.Sell, types.Hold:
		return v
	default:
		return types.Hold
	}
}

func normalizeRisk(s string) types.RiskLevel {
	switch v := types.RiskLevel(strings.ToUpper(strings.TrimSpace(s))); v {
	case types.RiskLow, types.RiskMedium, types.RiskHigh:
		return v
	default:
		return types.RiskMedium
	}
}

func optionalFloat(v gjson.Result) *float64 {
	f, ok := llm.Float(v)
	if !ok {
		return nil
	}
	return &f
}
