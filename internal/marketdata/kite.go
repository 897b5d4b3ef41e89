package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"ai-trader/internal/interfaces"
	"ai-trader/internal/types"
)

// kiteAPI is the part of the Kite Connect client used for candles.
type kiteAPI interface {
	GetLTP(instruments ...string) (kiteconnect.QuoteLTP, error)
	GetHistoricalData(instrumentToken int, interval string, fromDate time.Time, toDate time.Time, continuous bool, OI bool) ([]kiteconnect.HistoricalData, error)
}

// Kite fetches daily candles from Zerodha Kite Connect.
type Kite struct {
	kc           kiteAPI
	exchange     string
	lookbackDays int
	now          func() time.Time
}

var _ interfaces.MarketData = (*Kite)(nil)

// NewKite builds a Kite source. Historical data needs a valid access token
// and the historical-data add-on on the Kite app.
func NewKite(apiKey, accessToken, exchange string, lookbackDays int) *Kite {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	return newKite(kc, exchange, lookbackDays)
}

func newKite(kc kiteAPI, exchange string, lookbackDays int) *Kite {
	if exchange == "" {
		exchange = "NSE"
	}
	if lookbackDays <= 0 {
		lookbackDays = 90
	}
	return &Kite{kc: kc, exchange: exchange, lookbackDays: lookbackDays, now: time.Now}
}

func (k *Kite) RecentCandles(ctx context.Context, symbol string) ([]types.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	instrument := k.exchange + ":" + symbol
	ltp, err := k.kc.GetLTP(instrument)
	if err != nil {
		return nil, fmt.Errorf("kite LTP lookup for %s: %w", instrument, err)
	}
	quote, ok := ltp[instrument]
	if !ok || quote.InstrumentToken == 0 {
		return nil, errors.New("kite has no instrument token for " + instrument)
	}

	to := k.now()
	from := to.AddDate(0, 0, -k.lookbackDays)
	bars, err := k.kc.GetHistoricalData(quote.InstrumentToken, "day", from, to, false, false)
	if err != nil {
		return nil, fmt.Errorf("kite historical data for %s: %w", instrument, err)
	}

	candles := make([]types.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, types.Candle{
			Time:   b.Date.Unix(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	return candles, nil
}
