package ta

import (
	"math"

	"github.com/shopspring/decimal"
)

// SMA averages the trailing n values. Shorter inputs average everything
// available, so any non-empty series yields a value.
func SMA(vals []float64, n int) float64 {
	if len(vals) == 0 || n <= 0 {
		return math.NaN()
	}
	start := len(vals) - n
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for i := start; i < len(vals); i++ {
		sum += vals[i]
	}
	return sum / float64(len(vals)-start)
}

// EMASeries returns the exponential average of vals with alpha 2/(n+1),
// seeded by the first observation.
func EMASeries(vals []float64, n int) []float64 {
	if len(vals) == 0 || n <= 0 {
		return nil
	}
	return smooth(vals, 2.0/float64(n+1))
}

// EMA is the last point of EMASeries.
func EMA(vals []float64, n int) float64 {
	s := EMASeries(vals, n)
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

func smooth(vals []float64, alpha float64) []float64 {
	out := make([]float64, len(vals))
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI uses Wilder smoothing (alpha 1/period). The first observation counts
// as a zero move, and at least period observations are needed; otherwise NaN.
// A zero average loss reads as RSI 100.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period {
		return math.NaN()
	}
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}
	alpha := 1.0 / float64(period)
	avgGain := smooth(gains, alpha)[len(gains)-1]
	avgLoss := smooth(losses, alpha)[len(losses)-1]
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// MACD returns the last macd line, signal line and histogram values.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist float64) {
	if len(closes) == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	fastS := EMASeries(closes, fast)
	slowS := EMASeries(closes, slow)
	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fastS[i] - slowS[i]
	}
	sigS := EMASeries(macd, signal)
	line = macd[len(macd)-1]
	sig = sigS[len(sigS)-1]
	return line, sig, line - sig
}

// StdDev is the sample (n-1) standard deviation of the trailing n values,
// using whatever is available when shorter. A single value gives NaN.
func StdDev(vals []float64, n int) float64 {
	if n <= 0 {
		return math.NaN()
	}
	start := len(vals) - n
	if start < 0 {
		start = 0
	}
	window := vals[start:]
	if len(window) < 2 {
		return math.NaN()
	}
	m := SMA(window, len(window))
	s := 0.0
	for _, v := range window {
		d := v - m
		s += d * d
	}
	return math.Sqrt(s / float64(len(window)-1))
}

// Bollinger bands k sample deviations around SMA(n).
func Bollinger(closes []float64, n int, k float64) (mid, up, low float64) {
	mid = SMA(closes, n)
	sd := StdDev(closes, n)
	up = mid + k*sd
	low = mid - k*sd
	return
}

// Mean of all values, 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return SMA(vals, len(vals))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds half away from zero at the given number of decimals.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// OrDefault replaces NaN with def.
func OrDefault(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}
