package reasoning

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/llm"
	"ai-trader/internal/logger"
	"ai-trader/internal/metrics"
	"ai-trader/internal/types"
)

// Client asks the reasoning provider for a holistic assessment of one symbol.
type Client struct {
	llm       llm.Capability
	model     string
	maxTokens int
	metrics   *metrics.Recorder
}

var _ interfaces.Reasoner = (*Client)(nil)

func NewClient(capability llm.Capability, model string, maxTokens int, rec *metrics.Recorder) *Client {
	return &Client{llm: capability, model: model, maxTokens: maxTokens, metrics: rec}
}

// Assess never fails. No provider, a failed call or an unusable reply all
// yield DefaultResult.
func (c *Client) Assess(ctx context.Context, req interfaces.ReasoningRequest) types.ReasoningResult {
	provider, ok := c.llm.Handle()
	if !ok {
		c.metrics.RecordFallback("reasoning", "unconfigured")
		logger.Fallback(ctx, "reasoning", "unconfigured", "symbol", req.Symbol)
		return DefaultResult(req.Symbol)
	}

	reply, err := provider.Complete(ctx, interfaces.Prompt{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Text:      BuildPrompt(req),
	})
	if err != nil {
		c.metrics.RecordFallback("reasoning", "error")
		logger.ErrorWithErr(ctx, "Reasoning request failed, using default analysis", err, "symbol", req.Symbol)
		return DefaultResult(req.Symbol)
	}

	result, err := Normalize(reply)
	if err != nil {
		c.metrics.RecordFallback("reasoning", "invalid_reply")
		logger.Warn(ctx, "Reasoning reply rejected, using default analysis", "symbol", req.Symbol, "error", err)
		return DefaultResult(req.Symbol)
	}

	logger.Debug(ctx, "Reasoning result",
		"symbol", req.Symbol,
		"signal", result.Signal,
		"confidence", result.Confidence,
		"risk_level", result.RiskLevel,
	)
	return result
}

// DefaultResult is the HOLD assessment used whenever the provider cannot help.
func DefaultResult(symbol string) types.ReasoningResult {
	return types.ReasoningResult{
		Signal:     types.Hold,
		Confidence: 0.5,
		Reasoning: fmt.Sprintf("Unable to perform deep analysis for %s because the Anthropic API key is not configured. "+
			"Defaulting to HOLD. Please set the ANTHROPIC_API_KEY environment variable to enable AI-powered analysis.", symbol),
		RiskLevel:        types.RiskMedium,
		TechnicalSummary: "Technical analysis data available but LLM analysis unavailable.",
		SentimentSummary: "Sentiment analysis unavailable without API key.",
	}
}

// BuildPrompt lists every indicator and the sentiment context and asks for
// exactly the eight result keys.
func BuildPrompt(req interfaces.ReasoningRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional stock analyst. Analyse the following data for %s (current price: %.2f) "+
		"and provide a comprehensive trading recommendation.\n\n", req.Symbol, req.Price)

	b.WriteString("TECHNICAL INDICATORS:\n")
	for _, f := range indicatorFields(req.Indicators) {
		fmt.Fprintf(&b, "  %s: %s\n", f.key, strconv.FormatFloat(f.val, 'f', -1, 64))
	}

	b.WriteString("\nSENTIMENT DATA:\n")
	fmt.Fprintf(&b, "  overall_sentiment: %s\n", req.Sentiment.OverallSentiment)
	fmt.Fprintf(&b, "  sentiment_score: %s\n", strconv.FormatFloat(req.Sentiment.SentimentScore, 'f', -1, 64))
	fmt.Fprintf(&b, "  num_articles_analysed: %d\n", req.Sentiment.NumArticlesAnalysed)

	b.WriteString("\nProvide your analysis as a JSON object with EXACTLY these keys:\n" +
		`  "signal": one of "BUY", "SELL", or "HOLD"` + "\n" +
		`  "confidence": float between 0 and 1` + "\n" +
		`  "reasoning": detailed multi-sentence reasoning` + "\n" +
		`  "risk_level": one of "LOW", "MEDIUM", or "HIGH"` + "\n" +
		`  "price_target": suggested price target as a float or null` + "\n" +
		`  "stop_loss": suggested stop loss as a float or null` + "\n" +
		`  "technical_summary": one-paragraph technical analysis summary` + "\n" +
		`  "sentiment_summary": one-paragraph sentiment analysis summary` + "\n\n" +
		"Respond with ONLY the JSON object. No additional text.")
	return b.String()
}

type field struct {
	key string
	val float64
}

func indicatorFields(ind types.IndicatorSet) []field {
	return []field{
		{"rsi", ind.RSI},
		{"macd", ind.MACD},
		{"macd_signal", ind.MACDSignal},
		{"macd_histogram", ind.MACDHistogram},
		{"bb_upper", ind.BBUpper},
		{"bb_middle", ind.BBMiddle},
		{"bb_lower", ind.BBLower},
		{"sma_20", ind.SMA20},
		{"sma_50", ind.SMA50},
		{"ema_12", ind.EMA12},
		{"ema_26", ind.EMA26},
		{"current_price", ind.CurrentPrice},
		{"avg_volume", ind.AvgVolume},
		{"volume_ratio", ind.VolumeRatio},
	}
}
