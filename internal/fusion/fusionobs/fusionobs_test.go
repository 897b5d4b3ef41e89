package fusionobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-trader/internal/metrics"
	"ai-trader/internal/types"
)

type stubService struct {
	err error
}

func (s stubService) Analyze(_ context.Context, symbol string, _ []types.Candle, _ ...types.Article) (types.TradingSignal, error) {
	return types.TradingSignal{Symbol: symbol, SignalType: types.Buy, Confidence: 0.4, RiskLevel: types.RiskLow}, s.err
}

func (s stubService) Generate(_ context.Context, symbols []string) ([]types.TradingSignal, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]types.TradingSignal, len(symbols))
	for i, sym := range symbols {
		out[i] = types.TradingSignal{Symbol: sym, SignalType: types.Hold, RiskLevel: types.RiskHigh}
	}
	return out, nil
}

func (s stubService) ClassifySentiment(context.Context, []types.Article) ([]types.ArticleSentiment, error) {
	return nil, s.err
}

func (s stubService) AggregateSentiment(context.Context, []types.Article) (types.AggregateSentiment, error) {
	return types.AggregateSentiment{Label: types.Neutral}, s.err
}

func scrape(t *testing.T, rec *metrics.Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestWrapRecordsSignals(t *testing.T) {
	rec := metrics.New()
	svc := Wrap(stubService{}, rec)

	sig, err := svc.Analyze(context.Background(), "TCS", nil)
	require.NoError(t, err)
	assert.Equal(t, "TCS", sig.Symbol)

	out, err := svc.Generate(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	body := scrape(t, rec)
	assert.Contains(t, body, `aitrader_signals_total{signal_type="BUY"} 1`)
	assert.Contains(t, body, `aitrader_signals_total{signal_type="HOLD"} 2`)
	assert.Contains(t, body, `aitrader_pipeline_duration_seconds_count{operation="analyze"} 1`)
	assert.Contains(t, body, `aitrader_pipeline_duration_seconds_count{operation="generate"} 1`)
}

func TestWrapPassesErrorsThrough(t *testing.T) {
	rec := metrics.New()
	boom := errors.New("boom")
	svc := Wrap(stubService{err: boom}, rec)

	_, err := svc.Analyze(context.Background(), "TCS", nil)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Generate(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, boom)
	_, err = svc.AggregateSentiment(context.Background(), nil)
	assert.ErrorIs(t, err, boom)

	assert.NotContains(t, scrape(t, rec), "aitrader_signals_total{")
}
