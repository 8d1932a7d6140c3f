// Package indicator derives technical indicator series from price bars.
//
// Every function returns a series aligned with its input: index i of the output belongs to
// bar i. Entries inside the warm-up window are NaN so that callers can tell "not enough history"
// apart from a real zero.
package indicator

import (
	"math"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

type IndicatorType string

const (
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeATR            IndicatorType = "atr"
)

// Last returns the final value of a series, NaN when it is empty.
func Last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	return values[len(values)-1]
}

func validatePeriod(name IndicatorType, period int, minimum int) error {
	if period < minimum {
		return errors.Newf(errors.ErrCodeInvalidParameter, "%s period must be at least %d, got %d", name, minimum, period)
	}

	return nil
}

// requireBars fails with InsufficientDataError when fewer than lookback+1 values are available.
func requireBars(name IndicatorType, values int, lookback int) error {
	if values < lookback+1 {
		return errors.NewInsufficientDataErrorf(lookback+1, values, "", "%s needs %d values, got %d", name, lookback+1, values)
	}

	return nil
}

// maskWarmup replaces the first lookback entries with NaN.
func maskWarmup(values []float64, lookback int) []float64 {
	for i := 0; i < lookback && i < len(values); i++ {
		values[i] = math.NaN()
	}

	return values
}
