package types

// SignalType is the directional call of a stage or of the final signal.
type SignalType string

const (
	Buy  SignalType = "BUY"
	Sell SignalType = "SELL"
	Hold SignalType = "HOLD"
)

// Direction maps BUY/SELL/HOLD to +1/-1/0.
func (s SignalType) Direction() float64 {
	switch s {
	case Buy:
		return 1
	case Sell:
		return -1
	default:
		return 0
	}
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Sentiment labels for articles and aggregates.
const (
	Bullish = "bullish"
	Bearish = "bearish"
	Neutral = "neutral"
)

// Candle is one OHLCV bar; Time is unix seconds.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// IndicatorSet is the fixed set of indicators computed from a candle series.
type IndicatorSet struct {
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macd_signal"`
	MACDHistogram float64 `json:"macd_histogram"`
	BBUpper       float64 `json:"bb_upper"`
	BBMiddle      float64 `json:"bb_middle"`
	BBLower       float64 `json:"bb_lower"`
	SMA20         float64 `json:"sma_20"`
	SMA50         float64 `json:"sma_50"`
	EMA12         float64 `json:"ema_12"`
	EMA26         float64 `json:"ema_26"`
	CurrentPrice  float64 `json:"current_price"`
	AvgVolume     float64 `json:"avg_volume"`
	VolumeRatio   float64 `json:"volume_ratio"`
}

// NeutralIndicators is returned when there is not enough data to compute anything.
func NeutralIndicators() IndicatorSet {
	return IndicatorSet{RSI: 50, VolumeRatio: 1}
}

// Article is the input to sentiment classification.
type Article struct {
	Headline string `json:"headline" validate:"required"`
	Summary  string `json:"summary"`
}

type ArticleSentiment struct {
	Headline  string  `json:"headline"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

type AggregateSentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentContext is what the reasoning provider sees about news.
type SentimentContext struct {
	OverallSentiment    string  `json:"overall_sentiment"`
	SentimentScore      float64 `json:"sentiment_score"`
	NumArticlesAnalysed int     `json:"num_articles_analysed"`
}

// ReasoningResult is the normalized reply of the reasoning provider.
type ReasoningResult struct {
	Signal           SignalType `json:"signal"`
	Confidence       float64    `json:"confidence"`
	Reasoning        string     `json:"reasoning"`
	RiskLevel        RiskLevel  `json:"risk_level"`
	PriceTarget      *float64   `json:"price_target"`
	StopLoss         *float64   `json:"stop_loss"`
	TechnicalSummary string     `json:"technical_summary"`
	SentimentSummary string     `json:"sentiment_summary"`
}

// TradingSignal is the final output for one symbol.
type TradingSignal struct {
	Symbol           string     `json:"symbol"`
	SignalType       SignalType `json:"signal_type"`
	Confidence       float64    `json:"confidence"`
	Reasoning        string     `json:"reasoning"`
	TechnicalSummary string     `json:"technical_summary"`
	SentimentSummary string     `json:"sentiment_summary"`
	RiskLevel        RiskLevel  `json:"risk_level"`
	PriceTarget      *float64   `json:"price_target"`
	StopLoss         *float64   `json:"stop_loss"`
}
