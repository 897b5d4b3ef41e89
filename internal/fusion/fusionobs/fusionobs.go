package fusionobs

import (
	"context"
	"time"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/metrics"
	"ai-trader/internal/trace"
	"ai-trader/internal/types"
)

type observableService struct {
	service interfaces.SignalService
	metrics *metrics.Recorder
}

var _ interfaces.SignalService = (*observableService)(nil)

// Wrap adds spans, signal logs and pipeline metrics to a signal service.
func Wrap(service interfaces.SignalService, rec *metrics.Recorder) interfaces.SignalService {
	return &observableService{service: service, metrics: rec}
}

func (o *observableService) Analyze(ctx context.Context, symbol string, candles []types.Candle, articles ...types.Article) (types.TradingSignal, error) {
	ctx, span := trace.StartSpan(ctx, "fusion.Analyze")
	defer span.End()

	start := time.Now()
	logger.InfoSkip(ctx, 1, "Starting analysis",
		"symbol", symbol,
		"candles", len(candles),
		"articles", len(articles),
	)

	sig, err := o.service.Analyze(ctx, symbol, candles, articles...)
	o.metrics.ObserveDuration("analyze", time.Since(start))
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Analysis failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return sig, err
	}

	o.record(ctx, sig, "duration_ms", time.Since(start).Milliseconds())
	return sig, nil
}

func (o *observableService) Generate(ctx context.Context, symbols []string) ([]types.TradingSignal, error) {
	timer := logger.StartOperation(ctx, "fusion.Generate", "symbols", len(symbols))
	ctx = timer.GetContext()

	signals, err := o.service.Generate(ctx, symbols)
	if err != nil {
		timer.EndWithError(err)
		return nil, err
	}

	for _, sig := range signals {
		o.record(ctx, sig)
	}
	o.metrics.ObserveDuration("generate", timer.End("signals", len(signals)))
	return signals, nil
}

func (o *observableService) ClassifySentiment(ctx context.Context, articles []types.Article) ([]types.ArticleSentiment, error) {
	ctx, span := trace.StartSpan(ctx, "fusion.ClassifySentiment")
	defer span.End()

	start := time.Now()
	results, err := o.service.ClassifySentiment(ctx, articles)
	o.metrics.ObserveDuration("classify_sentiment", time.Since(start))
	if err != nil {
		logger.WarnSkip(ctx, 1, "Sentiment request rejected", "error", err)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Sentiment classified", "articles", len(results))
	return results, nil
}

func (o *observableService) AggregateSentiment(ctx context.Context, articles []types.Article) (types.AggregateSentiment, error) {
	ctx, span := trace.StartSpan(ctx, "fusion.AggregateSentiment")
	defer span.End()

	start := time.Now()
	agg, err := o.service.AggregateSentiment(ctx, articles)
	o.metrics.ObserveDuration("aggregate_sentiment", time.Since(start))
	if err != nil {
		logger.WarnSkip(ctx, 1, "Sentiment request rejected", "error", err)
		return agg, err
	}

	logger.InfoSkip(ctx, 1, "Sentiment aggregated",
		"articles", len(articles),
		"label", agg.Label,
		"score", agg.Score,
	)
	return agg, nil
}

func (o *observableService) record(ctx context.Context, sig types.TradingSignal, fields ...any) {
	o.metrics.RecordSignal(string(sig.SignalType))
	logger.Signal(ctx, sig.Symbol, string(sig.SignalType), sig.Confidence, string(sig.RiskLevel), fields...)
}
