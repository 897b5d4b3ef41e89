package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"ai-trader/internal/api"
	"ai-trader/internal/interfaces"
	"ai-trader/internal/types"
)

// DefaultYahooBaseURL serves the v8 chart API.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// Yahoo fetches daily candles from the Yahoo Finance chart API.
type Yahoo struct {
	client   *api.Client
	rng      string
	interval string
	suffix   string
}

var _ interfaces.MarketData = (*Yahoo)(nil)

// YahooOptions configures the lookup window. Zero values mean 3mo of 1d bars.
type YahooOptions struct {
	BaseURL  string
	Range    string
	Interval string
	// Suffix is appended to the symbol, e.g. ".NS" for NSE listings
	Suffix  string
	Timeout time.Duration
}

func NewYahoo(opts YahooOptions) *Yahoo {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultYahooBaseURL
	}
	if opts.Range == "" {
		opts.Range = "3mo"
	}
	if opts.Interval == "" {
		opts.Interval = "1d"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Yahoo{
		client: api.NewClient(
			api.WithBaseURL(opts.BaseURL),
			api.WithTimeout(opts.Timeout),
			api.WithHeaders(api.YahooFinanceHeaders()),
			api.WithLogging(true),
		),
		rng:      opts.Range,
		interval: opts.Interval,
		suffix:   opts.Suffix,
	}
}

// RecentCandles returns bars in the order Yahoo sends them. Bars with a
// missing close (halts, partial days) are dropped.
func (y *Yahoo) RecentCandles(ctx context.Context, symbol string) ([]types.Candle, error) {
	path := fmt.Sprintf("/v8/finance/chart/%s?range=%s&interval=%s",
		url.PathEscape(symbol+y.suffix), url.QueryEscape(y.rng), url.QueryEscape(y.interval))

	resp, err := y.client.GET(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart request for %s: %w", symbol, err)
	}

	if desc := resp.Get("chart.error.description"); desc.Exists() {
		return nil, fmt.Errorf("yahoo chart error for %s: %s", symbol, desc.String())
	}
	result := resp.Get("chart.result.0")
	if !result.Exists() {
		return nil, errors.New("yahoo chart response has no result")
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	candles := make([]types.Candle, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i].Type != gjson.Number {
			continue
		}
		candles = append(candles, types.Candle{
			Time:   ts.Int(),
			Open:   at(opens, i),
			High:   at(highs, i),
			Low:    at(lows, i),
			Close:  closes[i].Float(),
			Volume: at(volumes, i),
		})
	}
	return candles, nil
}

// at reads index i of a parallel series, 0 when missing or null.
func at(series []gjson.Result, i int) float64 {
	if i >= len(series) {
		return 0
	}
	return series[i].Float()
}
