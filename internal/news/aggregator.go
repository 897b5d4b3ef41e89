package news

import (
	"context"
	"errors"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/metrics"
	"ai-trader/internal/ta"
	"ai-trader/internal/types"
)

// Aggregate label thresholds on the mean score.
const (
	bullishThreshold = 0.15
	bearishThreshold = -0.15
)

// Aggregator turns per-article classifications into one directional score.
// Classification is all-or-nothing: any failure makes every article neutral.
type Aggregator struct {
	classifier interfaces.SentimentClassifier
	metrics    *metrics.Recorder
}

func NewAggregator(classifier interfaces.SentimentClassifier, rec *metrics.Recorder) *Aggregator {
	return &Aggregator{classifier: classifier, metrics: rec}
}

// Classify never fails; it returns one entry per article.
func (a *Aggregator) Classify(ctx context.Context, articles []types.Article) []types.ArticleSentiment {
	if len(articles) == 0 {
		return []types.ArticleSentiment{}
	}
	if a.classifier == nil {
		a.fallback(ctx, "unconfigured", nil, len(articles))
		return neutralFor(articles)
	}

	results, err := a.classifier.Classify(ctx, articles)
	if err == nil && len(results) != len(articles) {
		err = errors.New("classifier returned a different number of results")
	}
	if err != nil {
		reason := "error"
		if errors.Is(err, ErrUnavailable) {
			reason = "unconfigured"
			err = nil
		}
		a.fallback(ctx, reason, err, len(articles))
		return neutralFor(articles)
	}

	out := make([]types.ArticleSentiment, len(results))
	for i, r := range results {
		out[i] = types.ArticleSentiment{
			Headline:  r.Headline,
			Sentiment: normalizeLabel(r.Sentiment),
			Score:     ta.Clamp(r.Score, -1, 1),
		}
	}
	return out
}

// Aggregate averages the article scores (rounded to 4 places) and labels the mean.
func (a *Aggregator) Aggregate(ctx context.Context, articles []types.Article) types.AggregateSentiment {
	if len(articles) == 0 {
		return types.AggregateSentiment{Label: types.Neutral, Score: 0}
	}
	return Summarize(a.Classify(ctx, articles))
}

// Summarize reduces classified articles to an aggregate.
func Summarize(results []types.ArticleSentiment) types.AggregateSentiment {
	if len(results) == 0 {
		return types.AggregateSentiment{Label: types.Neutral, Score: 0}
	}
	total := 0.0
	for _, r := range results {
		total += r.Score
	}
	mean := total / float64(len(results))

	label := types.Neutral
	if mean > bullishThreshold {
		label = types.Bullish
	} else if mean < bearishThreshold {
		label = types.Bearish
	}
	return types.AggregateSentiment{Label: label, Score: ta.Round(mean, 4)}
}

func (a *Aggregator) fallback(ctx context.Context, reason string, err error, count int) {
	a.metrics.RecordFallback("sentiment", reason)
	if err != nil {
		logger.ErrorWithErr(ctx, "Sentiment classification failed, using neutral defaults", err, "articles", count)
		return
	}
	logger.Fallback(ctx, "sentiment", reason, "articles", count)
}

func neutralFor(articles []types.Article) []types.ArticleSentiment {
	out := make([]types.ArticleSentiment, len(articles))
	for i, a := range articles {
		out[i] = types.ArticleSentiment{Headline: a.Headline, Sentiment: types.Neutral, Score: 0}
	}
	return out
}
