package types

import (
	"sort"
	"time"
)

// MarketData is a single OHLCV bar of a symbol.
type MarketData struct {
	Symbol string    `json:"symbol" yaml:"symbol"`
	Time   time.Time `json:"time" yaml:"time"`
	Open   float64   `json:"open" yaml:"open"`
	High   float64   `json:"high" yaml:"high"`
	Low    float64   `json:"low" yaml:"low"`
	Close  float64   `json:"close" yaml:"close"`
	Volume float64   `json:"volume" yaml:"volume"`
}

// NormalizeSeries sorts bars ascending by time and drops duplicate timestamps, keeping the last one seen.
func NormalizeSeries(series []MarketData) []MarketData {
	if len(series) == 0 {
		return series
	}

	sorted := make([]MarketData, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	out := sorted[:0]
	for _, bar := range sorted {
		if len(out) > 0 && out[len(out)-1].Time.Equal(bar.Time) {
			out[len(out)-1] = bar

			continue
		}

		out = append(out, bar)
	}

	return out
}

// Closes extracts the close prices of a series.
func Closes(series []MarketData) []float64 {
	out := make([]float64, len(series))
	for i, bar := range series {
		out[i] = bar.Close
	}

	return out
}

// Highs extracts the high prices of a series.
func Highs(series []MarketData) []float64 {
	out := make([]float64, len(series))
	for i, bar := range series {
		out[i] = bar.High
	}

	return out
}

// Lows extracts the low prices of a series.
func Lows(series []MarketData) []float64 {
	out := make([]float64, len(series))
	for i, bar := range series {
		out[i] = bar.Low
	}

	return out
}
