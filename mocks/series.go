package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/trendscout/internal/types"
)

// SeriesGenerator builds reproducible futures candles for tests.
type SeriesGenerator struct {
	rng *rand.Rand
}

// NewSeriesGenerator creates a generator. Use a fixed seed for reproducible results.
func NewSeriesGenerator(seed int64) *SeriesGenerator {
	return &SeriesGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// SeriesConfig configures a generated series.
type SeriesConfig struct {
	Symbol   string
	Start    time.Time
	Interval time.Duration
	Bars     int
	// InitialPrice is the open of the first bar
	InitialPrice float64
	// Volatility is the standard deviation of the per-bar return (0.002 = 0.2%)
	Volatility float64
	// Drift is added to every per-bar return
	Drift float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
}

// DefaultSeriesConfig returns 5 minute candles around 100.
func DefaultSeriesConfig(symbol string) SeriesConfig {
	return SeriesConfig{
		Symbol:       symbol,
		Start:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:     5 * time.Minute,
		Bars:         500,
		InitialPrice: 100,
		Volatility:   0.004,
		Drift:        0,
		VolumeBase:   1000,
	}
}

// Generate creates a geometric random walk. Bars are ascending and never share a timestamp.
func (g *SeriesGenerator) Generate(config SeriesConfig) []types.MarketData {
	series := make([]types.MarketData, config.Bars)
	price := config.InitialPrice

	for i := range config.Bars {
		open := price
		change := config.Volatility*g.rng.NormFloat64() + config.Drift

		close := open * (1 + change)
		if close <= 0 {
			close = open * 0.99
		}

		high := math.Max(open, close) * (1 + math.Abs(g.rng.Float64()*config.Volatility*0.5))
		low := math.Min(open, close) * (1 - math.Abs(g.rng.Float64()*config.Volatility*0.5))
		volume := config.VolumeBase * (0.5 + g.rng.Float64())

		series[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   config.Start.Add(time.Duration(i) * config.Interval),
			Open:   round(open, 4),
			High:   round(high, 4),
			Low:    round(low, 4),
			Close:  round(close, 4),
			Volume: round(volume, 2),
		}

		price = close
	}

	return series
}

// Series generates bars of the default configuration with seed 42.
func Series(symbol string, bars int) []types.MarketData {
	config := DefaultSeriesConfig(symbol)
	config.Bars = bars

	return NewSeriesGenerator(42).Generate(config)
}

// FlatSeries returns bars with every price equal to price.
func FlatSeries(symbol string, bars int, price float64) []types.MarketData {
	config := DefaultSeriesConfig(symbol)
	series := make([]types.MarketData, bars)

	for i := range bars {
		series[i] = types.MarketData{
			Symbol: symbol,
			Time:   config.Start.Add(time.Duration(i) * config.Interval),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: config.VolumeBase,
		}
	}

	return series
}

func round(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
