package indicator

import (
	"github.com/markcheno/go-talib"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// MACDSeries holds the three MACD outputs aligned with the input.
type MACDSeries struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the moving average convergence divergence of values.
func MACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) (MACDSeries, error) {
	for _, period := range []int{fastPeriod, slowPeriod, signalPeriod} {
		if err := validatePeriod(IndicatorTypeMACD, period, 1); err != nil {
			return MACDSeries{}, err
		}
	}

	if fastPeriod >= slowPeriod {
		return MACDSeries{}, errors.Newf(errors.ErrCodeInvalidParameter, "macd fast period %d must be below slow period %d", fastPeriod, slowPeriod)
	}

	lookback := slowPeriod - 1 + signalPeriod - 1
	if err := requireBars(IndicatorTypeMACD, len(values), lookback); err != nil {
		return MACDSeries{}, err
	}

	macd, signal, hist := talib.Macd(values, fastPeriod, slowPeriod, signalPeriod)

	return MACDSeries{
		MACD:      maskWarmup(macd, lookback),
		Signal:    maskWarmup(signal, lookback),
		Histogram: maskWarmup(hist, lookback),
	}, nil
}
