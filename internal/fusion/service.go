package fusion

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"golang.org/x/sync/errgroup"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/metrics"
	"ai-trader/internal/news"
	"ai-trader/internal/technical"
	"ai-trader/internal/types"
)

// MaxBatchSymbols caps the fan-out of one Generate call.
const MaxBatchSymbols = 20

// Service runs the signal pipeline:
// candles -> indicators -> technical score -> sentiment -> reasoning -> combine.
// It holds no per-request state; all collaborators are injected.
type Service struct {
	market       interfaces.MarketData
	sentiment    *news.Aggregator
	reasoner     interfaces.Reasoner
	headlines    interfaces.HeadlineSource
	maxHeadlines int
	metrics      *metrics.Recorder
}

var _ interfaces.SignalService = (*Service)(nil)

type Option func(*Service)

// WithHeadlines attaches scraped news to symbols in Generate.
func WithHeadlines(src interfaces.HeadlineSource, max int) Option {
	return func(s *Service) {
		s.headlines = src
		s.maxHeadlines = max
	}
}

func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = rec
	}
}

func NewService(market interfaces.MarketData, sentiment *news.Aggregator, reasoner interfaces.Reasoner, opts ...Option) *Service {
	s := &Service{market: market, sentiment: sentiment, reasoner: reasoner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze produces the signal for one symbol. Empty candles trigger the
// market-data fallback. Collaborator failures degrade to defaults; only a
// bad symbol or a panic inside the pipeline is returned as an error.
func (s *Service) Analyze(ctx context.Context, symbol string, candles []types.Candle, articles ...types.Article) (sig types.TradingSignal, err error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return types.TradingSignal{}, invalid("Symbol is required.")
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Signal pipeline panicked", "symbol", symbol, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("signal pipeline panicked: %v", r)
		}
	}()

	return s.run(ctx, symbol, candles, articles), nil
}

func (s *Service) run(ctx context.Context, symbol string, candles []types.Candle, articles []types.Article) types.TradingSignal {
	if len(candles) == 0 {
		candles = s.fetchCandles(ctx, symbol)
	}

	ind := technical.Compute(candles)
	techSignal, techConf := technical.Score(ind)

	agg := types.AggregateSentiment{Label: types.Neutral, Score: 0}
	if len(articles) > 0 {
		agg = s.sentiment.Aggregate(ctx, articles)
	}

	res := s.reasoner.Assess(ctx, interfaces.ReasoningRequest{
		Symbol:     symbol,
		Indicators: ind,
		Sentiment: types.SentimentContext{
			OverallSentiment:    agg.Label,
			SentimentScore:      agg.Score,
			NumArticlesAnalysed: len(articles),
		},
		Price: ind.CurrentPrice,
	})

	votes := Votes{
		TechSignal:          techSignal,
		TechConfidence:      techConf,
		SentimentScore:      agg.Score,
		ReasoningSignal:     res.Signal,
		ReasoningConfidence: res.Confidence,
	}
	d := Combine(votes)

	logger.Debug(ctx, "Signal votes",
		"symbol", symbol,
		"candles", len(candles),
		"technical", techSignal,
		"technical_confidence", techConf,
		"sentiment", agg.Label,
		"sentiment_score", agg.Score,
		"reasoning", res.Signal,
		"reasoning_confidence", res.Confidence,
		"combined", d.Score,
	)

	return types.TradingSignal{
		Symbol:           symbol,
		SignalType:       d.Signal,
		Confidence:       d.Confidence,
		Reasoning:        orDefault(res.Reasoning, reasoningSummary(symbol, agg, votes, d)),
		TechnicalSummary: orDefault(res.TechnicalSummary, technicalSummary(ind, votes)),
		SentimentSummary: orDefault(res.SentimentSummary, sentimentSummary(agg)),
		RiskLevel:        res.RiskLevel,
		PriceTarget:      res.PriceTarget,
		StopLoss:         res.StopLoss,
	}
}

// fetchCandles never fails: any market-data problem yields no candles.
func (s *Service) fetchCandles(ctx context.Context, symbol string) []types.Candle {
	if s.market == nil {
		return nil
	}
	candles, err := s.market.RecentCandles(ctx, symbol)
	if err != nil {
		s.metrics.RecordFallback("market_data", "error")
		logger.Warn(ctx, "Market data unavailable, continuing without candles", "symbol", symbol, "error", err)
		return nil
	}
	return candles
}

// Generate analyses up to MaxBatchSymbols symbols concurrently. Symbols are
// trimmed and upper-cased; blanks are dropped. Output order follows input
// order and a failing symbol yields Degraded instead of failing the batch.
func (s *Service) Generate(ctx context.Context, symbols []string) ([]types.TradingSignal, error) {
	list, err := NormalizeSymbols(symbols)
	if err != nil {
		return nil, err
	}

	results := make([]types.TradingSignal, len(list))
	var g errgroup.Group
	for i, sym := range list {
		g.Go(func() error {
			results[i] = s.generateOne(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (s *Service) generateOne(ctx context.Context, symbol string) types.TradingSignal {
	articles := s.fetchHeadlines(ctx, symbol)
	sig, err := s.Analyze(ctx, symbol, nil, articles...)
	if err != nil {
		logger.ErrorWithErr(ctx, "Error generating signal", err, "symbol", symbol)
		return Degraded(symbol)
	}
	return sig
}

func (s *Service) fetchHeadlines(ctx context.Context, symbol string) (articles []types.Article) {
	if s.headlines == nil || s.maxHeadlines <= 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Headline source panicked", "symbol", symbol, "panic", r)
			articles = nil
		}
	}()
	articles, err := s.headlines.Headlines(ctx, symbol, s.maxHeadlines)
	if err != nil {
		logger.Warn(ctx, "Headlines unavailable", "symbol", symbol, "error", err)
		return nil
	}
	return articles
}

// NormalizeSymbols trims, upper-cases and drops blank symbols, then enforces
// the batch bounds.
func NormalizeSymbols(symbols []string) ([]string, error) {
	list := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if sym = strings.ToUpper(strings.TrimSpace(sym)); sym != "" {
			list = append(list, sym)
		}
	}
	if len(list) == 0 {
		return nil, invalid("No valid symbols provided.")
	}
	if len(list) > MaxBatchSymbols {
		return nil, invalid(fmt.Sprintf("Maximum %d symbols per request.", MaxBatchSymbols))
	}
	return list, nil
}

// ClassifySentiment labels each article.
func (s *Service) ClassifySentiment(ctx context.Context, articles []types.Article) ([]types.ArticleSentiment, error) {
	if len(articles) == 0 {
		return nil, invalid("No articles provided.")
	}
	return s.sentiment.Classify(ctx, articles), nil
}

// AggregateSentiment reduces articles to one label and score.
func (s *Service) AggregateSentiment(ctx context.Context, articles []types.Article) (types.AggregateSentiment, error) {
	if len(articles) == 0 {
		return types.AggregateSentiment{}, invalid("No articles provided.")
	}
	return s.sentiment.Aggregate(ctx, articles), nil
}
