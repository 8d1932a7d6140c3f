package indicator

import (
	"github.com/markcheno/go-talib"
)

// SMA returns the simple moving average of values.
func SMA(values []float64, period int) ([]float64, error) {
	if err := validatePeriod(IndicatorTypeSMA, period, 1); err != nil {
		return nil, err
	}

	lookback := period - 1
	if err := requireBars(IndicatorTypeSMA, len(values), lookback); err != nil {
		return nil, err
	}

	return maskWarmup(talib.Sma(values, period), lookback), nil
}
