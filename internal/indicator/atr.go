package indicator

import (
	"github.com/markcheno/go-talib"

	"github.com/rxtech-lab/trendscout/internal/types"
)

// ATR returns the average true range of a bar series.
func ATR(series []types.MarketData, period int) ([]float64, error) {
	if err := validatePeriod(IndicatorTypeATR, period, 1); err != nil {
		return nil, err
	}

	lookback := period
	if err := requireBars(IndicatorTypeATR, len(series), lookback); err != nil {
		return nil, err
	}

	atr := talib.Atr(types.Highs(series), types.Lows(series), types.Closes(series), period)

	return maskWarmup(atr, lookback), nil
}
