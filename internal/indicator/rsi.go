package indicator

import (
	"github.com/markcheno/go-talib"
)

// RSI returns Wilder's relative strength index of values, in the range 0 to 100.
func RSI(values []float64, period int) ([]float64, error) {
	if err := validatePeriod(IndicatorTypeRSI, period, 2); err != nil {
		return nil, err
	}

	lookback := period
	if err := requireBars(IndicatorTypeRSI, len(values), lookback); err != nil {
		return nil, err
	}

	return maskWarmup(talib.Rsi(values, period), lookback), nil
}
