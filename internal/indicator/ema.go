package indicator

import (
	"github.com/markcheno/go-talib"
)

// EMA returns the exponential moving average of values.
func EMA(values []float64, period int) ([]float64, error) {
	if err := validatePeriod(IndicatorTypeEMA, period, 1); err != nil {
		return nil, err
	}

	lookback := period - 1
	if err := requireBars(IndicatorTypeEMA, len(values), lookback); err != nil {
		return nil, err
	}

	return maskWarmup(talib.Ema(values, period), lookback), nil
}
