package indicator

import (
	"github.com/markcheno/go-talib"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// BandSeries holds Bollinger Bands aligned with the input.
type BandSeries struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// BollingerBands computes bands of deviation standard deviations around an SMA of period.
func BollingerBands(values []float64, period int, deviation float64) (BandSeries, error) {
	if err := validatePeriod(IndicatorTypeBollingerBands, period, 2); err != nil {
		return BandSeries{}, err
	}

	if deviation <= 0 {
		return BandSeries{}, errors.Newf(errors.ErrCodeInvalidParameter, "bollinger deviation must be positive, got %v", deviation)
	}

	lookback := period - 1
	if err := requireBars(IndicatorTypeBollingerBands, len(values), lookback); err != nil {
		return BandSeries{}, err
	}

	upper, middle, lower := talib.BBands(values, period, deviation, deviation, talib.SMA)

	return BandSeries{
		Upper:  maskWarmup(upper, lookback),
		Middle: maskWarmup(middle, lookback),
		Lower:  maskWarmup(lower, lookback),
	}, nil
}
