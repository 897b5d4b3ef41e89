package fusion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/news"
	"ai-trader/internal/reasoning"
	"ai-trader/internal/types"
)

type fakeMarket struct {
	mu      sync.Mutex
	candles map[string][]types.Candle
	calls   []string
}

func (f *fakeMarket) RecentCandles(_ context.Context, symbol string) ([]types.Candle, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()

	switch symbol {
	case "BADSYM":
		panic("corrupt series")
	case "DOWN":
		return nil, errors.New("exchange closed")
	}
	return f.candles[symbol], nil
}

// defaultReasoner behaves like an unconfigured reasoning client.
type defaultReasoner struct{}

func (defaultReasoner) Assess(_ context.Context, req interfaces.ReasoningRequest) types.ReasoningResult {
	return reasoning.DefaultResult(req.Symbol)
}

type fixedReasoner struct {
	result types.ReasoningResult
	got    interfaces.ReasoningRequest
}

func (r *fixedReasoner) Assess(_ context.Context, req interfaces.ReasoningRequest) types.ReasoningResult {
	r.got = req
	return r.result
}

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, articles []types.Article) ([]types.ArticleSentiment, error) {
	args := m.Called(ctx, articles)
	res, _ := args.Get(0).([]types.ArticleSentiment)
	return res, args.Error(1)
}

type fakeHeadlines struct {
	articles []types.Article
}

func (f *fakeHeadlines) Headlines(_ context.Context, _ string, max int) ([]types.Article, error) {
	if len(f.articles) > max {
		return f.articles[:max], nil
	}
	return f.articles, nil
}

func candles(closes ...float64) []types.Candle {
	cs := make([]types.Candle, len(closes))
	for i, c := range closes {
		cs[i] = types.Candle{Time: int64(1700000000 + i*86400), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return cs
}

func newService(market interfaces.MarketData, reasoner interfaces.Reasoner, opts ...Option) *Service {
	return NewService(market, news.NewAggregator(nil, nil), reasoner, opts...)
}

func TestCombine(t *testing.T) {
	tests := map[string]struct {
		votes  Votes
		signal types.SignalType
		conf   float64
	}{
		"all hold": {
			votes:  Votes{TechSignal: types.Hold, ReasoningSignal: types.Hold},
			signal: types.Hold,
			conf:   0,
		},
		"technical alone cannot buy": {
			votes:  Votes{TechSignal: types.Buy, TechConfidence: 0.25, ReasoningSignal: types.Hold, ReasoningConfidence: 0.5},
			signal: types.Hold,
			conf:   0.1125,
		},
		"agreement buys": {
			votes:  Votes{TechSignal: types.Buy, TechConfidence: 0.6, SentimentScore: 0.5, ReasoningSignal: types.Buy, ReasoningConfidence: 0.8},
			signal: types.Buy,
			conf:   0.65,
		},
		"agreement sells": {
			votes:  Votes{TechSignal: types.Sell, TechConfidence: 1, SentimentScore: -1, ReasoningSignal: types.Sell, ReasoningConfidence: 1},
			signal: types.Sell,
			conf:   1,
		},
		"below threshold holds": {
			votes:  Votes{TechSignal: types.Sell, TechConfidence: 0.6, ReasoningSignal: types.Hold},
			signal: types.Hold,
			conf:   0.27,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := Combine(tt.votes)
			assert.Equal(t, tt.signal, d.Signal)
			assert.InDelta(t, tt.conf, d.Confidence, 1e-9)
			assert.GreaterOrEqual(t, d.Confidence, 0.0)
			assert.LessOrEqual(t, d.Confidence, 1.0)
		})
	}
}

func TestAnalyzeTwoCandlesWithoutProviders(t *testing.T) {
	svc := newService(nil, defaultReasoner{})

	sig, err := svc.Analyze(context.Background(), "RELIANCE", candles(100, 110))
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", sig.Symbol)
	assert.Equal(t, types.Hold, sig.SignalType)
	assert.InDelta(t, 0.1125, sig.Confidence, 1e-12)
	assert.Equal(t, types.RiskMedium, sig.RiskLevel)
	assert.Contains(t, sig.Reasoning, "RELIANCE")
	assert.Nil(t, sig.PriceTarget)
	assert.Nil(t, sig.StopLoss)
}

func TestAnalyzeSynthesizesMissingSummaries(t *testing.T) {
	r := &fixedReasoner{result: types.ReasoningResult{Signal: types.Buy, Confidence: 0.8, RiskLevel: types.RiskLow}}
	svc := newService(nil, r)

	sig, err := svc.Analyze(context.Background(), "TCS", candles(100, 110))
	require.NoError(t, err)

	// 0.45*0.25 + 0.35*0.8 = 0.3925
	assert.Equal(t, types.Buy, sig.SignalType)
	assert.InDelta(t, 0.3925, sig.Confidence, 1e-12)
	assert.Equal(t, "Overall sentiment: neutral (score: 0.00)", sig.SentimentSummary)
	assert.Equal(t, "RSI: 50.0, MACD Histogram: 0.6382, SMA20: 105.00, SMA50: 105.00, Technical signal: BUY (confidence: 0.25)", sig.TechnicalSummary)
	assert.Equal(t, "Combined analysis for TCS: technical=BUY(0.25), sentiment=neutral(0.00), LLM=BUY(0.80). Weighted score: 0.3925.", sig.Reasoning)
	assert.Equal(t, 110.0, r.got.Price)
}

func TestAnalyzeFeedsSentimentToReasoner(t *testing.T) {
	arts := []types.Article{{Headline: "Record profit"}, {Headline: "New plant"}}
	mc := &mockClassifier{}
	mc.On("Classify", mock.Anything, arts).Return([]types.ArticleSentiment{
		{Headline: "Record profit", Sentiment: types.Bullish, Score: 0.9},
		{Headline: "New plant", Sentiment: types.Bullish, Score: 0.5},
	}, nil)

	r := &fixedReasoner{result: reasoning.DefaultResult("INFY")}
	svc := NewService(nil, news.NewAggregator(mc, nil), r)

	sig, err := svc.Analyze(context.Background(), "INFY", candles(100, 110), arts...)
	require.NoError(t, err)

	assert.Equal(t, types.SentimentContext{OverallSentiment: types.Bullish, SentimentScore: 0.7, NumArticlesAnalysed: 2}, r.got.Sentiment)
	// 0.1125 + 0.20*0.7 = 0.2525
	assert.InDelta(t, 0.2525, sig.Confidence, 1e-12)
	assert.Equal(t, types.Hold, sig.SignalType)
	mc.AssertExpectations(t)
}

func TestAnalyzeFetchesCandlesWhenNoneGiven(t *testing.T) {
	m := &fakeMarket{candles: map[string][]types.Candle{"HDFC": candles(100, 110)}}
	svc := newService(m, defaultReasoner{})

	sig, err := svc.Analyze(context.Background(), "HDFC", nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.1125, sig.Confidence, 1e-12)
	assert.Equal(t, []string{"HDFC"}, m.calls)
}

func TestAnalyzeMarketDataFailureIsNeutral(t *testing.T) {
	m := &fakeMarket{}
	svc := newService(m, defaultReasoner{})

	sig, err := svc.Analyze(context.Background(), "DOWN", nil)
	require.NoError(t, err)
	assert.Equal(t, types.Hold, sig.SignalType)
	assert.Equal(t, 0.0, sig.Confidence)
}

func TestAnalyzeRecoversPanics(t *testing.T) {
	svc := newService(&fakeMarket{}, defaultReasoner{})

	_, err := svc.Analyze(context.Background(), "BADSYM", nil)
	assert.ErrorContains(t, err, "corrupt series")
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	svc := newService(nil, defaultReasoner{})
	cs := candles(100, 102, 101, 105, 107, 104, 108, 111, 109, 112, 115, 113, 116, 118, 117, 120)

	first, err := svc.Analyze(context.Background(), "SBIN", cs)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), "SBIN", cs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateValidation(t *testing.T) {
	m := &fakeMarket{}
	svc := newService(m, defaultReasoner{})

	tooMany := make([]string, MaxBatchSymbols+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("SYM%d", i)
	}

	tests := map[string]struct {
		symbols []string
		msg     string
	}{
		"empty":    {symbols: nil, msg: "No valid symbols provided."},
		"blanks":   {symbols: []string{" ", ""}, msg: "No valid symbols provided."},
		"too many": {symbols: tooMany, msg: "Maximum 20 symbols per request."},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.symbols)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.msg, ve.Msg)
			assert.Empty(t, m.calls, "rejected batches must not fetch candles")
		})
	}
}

func TestGenerateAcceptsTwentySymbols(t *testing.T) {
	symbols := make([]string, MaxBatchSymbols)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("SYM%d", i)
	}
	svc := newService(&fakeMarket{}, defaultReasoner{})

	out, err := svc.Generate(context.Background(), symbols)
	require.NoError(t, err)
	require.Len(t, out, MaxBatchSymbols)
	for i, sig := range out {
		assert.Equal(t, symbols[i], sig.Symbol)
	}
}

func TestGenerateIsolatesFailingSymbol(t *testing.T) {
	m := &fakeMarket{candles: map[string][]types.Candle{
		"RELIANCE": candles(100, 110),
		"TCS":      candles(100, 110),
	}}
	svc := newService(m, defaultReasoner{})

	out, err := svc.Generate(context.Background(), []string{" reliance", "BADSYM", "tcs "})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "RELIANCE", out[0].Symbol)
	assert.InDelta(t, 0.1125, out[0].Confidence, 1e-12)
	assert.Equal(t, Degraded("BADSYM"), out[1])
	assert.Equal(t, "TCS", out[2].Symbol)

	assert.Equal(t, types.Hold, out[1].SignalType)
	assert.Equal(t, types.RiskHigh, out[1].RiskLevel)
	assert.Equal(t, "Error generating signal for BADSYM.", out[1].Reasoning)
	assert.Equal(t, "Unavailable due to error.", out[1].TechnicalSummary)
}

func TestGenerateAttachesHeadlines(t *testing.T) {
	arts := []types.Article{{Headline: "a"}, {Headline: "b"}, {Headline: "c"}}
	mc := &mockClassifier{}
	mc.On("Classify", mock.Anything, arts[:2]).Return([]types.ArticleSentiment{
		{Headline: "a", Sentiment: types.Bearish, Score: -0.5},
		{Headline: "b", Sentiment: types.Bearish, Score: -0.5},
	}, nil).Once()

	r := &fixedReasoner{result: reasoning.DefaultResult("ITC")}
	svc := NewService(&fakeMarket{}, news.NewAggregator(mc, nil), r, WithHeadlines(&fakeHeadlines{articles: arts}, 2))

	out, err := svc.Generate(context.Background(), []string{"itc"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2, r.got.Sentiment.NumArticlesAnalysed)
	assert.Equal(t, types.Bearish, r.got.Sentiment.OverallSentiment)
	mc.AssertExpectations(t)
}

func TestSentimentOperationsRejectEmptyInput(t *testing.T) {
	svc := newService(nil, defaultReasoner{})

	_, err := svc.AggregateSentiment(context.Background(), nil)
	assert.EqualError(t, err, "No articles provided.")

	_, err = svc.ClassifySentiment(context.Background(), []types.Article{})
	assert.EqualError(t, err, "No articles provided.")
}

func TestSentimentWithoutClassifierIsNeutral(t *testing.T) {
	svc := newService(nil, defaultReasoner{})
	arts := []types.Article{{Headline: "x"}, {Headline: "y"}}

	agg, err := svc.AggregateSentiment(context.Background(), arts)
	require.NoError(t, err)
	assert.Equal(t, types.AggregateSentiment{Label: types.Neutral, Score: 0}, agg)

	per, err := svc.ClassifySentiment(context.Background(), arts)
	require.NoError(t, err)
	assert.Equal(t, []types.ArticleSentiment{
		{Headline: "x", Sentiment: types.Neutral},
		{Headline: "y", Sentiment: types.Neutral},
	}, per)
}
