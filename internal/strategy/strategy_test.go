package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

func TestDecide(t *testing.T) {
	thresholds := Thresholds{BuyRSIBelow: 40, SellRSIAbove: 60}

	tests := []struct {
		name     string
		close    float64
		ema      float64
		rsi      float64
		expected types.Signal
	}{
		{name: "below ema and oversold", close: 99, ema: 100, rsi: 35, expected: types.SignalBuy},
		{name: "above ema and overbought", close: 101, ema: 100, rsi: 65, expected: types.SignalSell},
		{name: "below ema but neutral rsi", close: 99, ema: 100, rsi: 50, expected: types.SignalNone},
		{name: "above ema but neutral rsi", close: 101, ema: 100, rsi: 50, expected: types.SignalNone},
		{name: "oversold above ema", close: 101, ema: 100, rsi: 30, expected: types.SignalNone},
		{name: "overbought below ema", close: 99, ema: 100, rsi: 70, expected: types.SignalNone},
		{name: "close equals ema", close: 100, ema: 100, rsi: 10, expected: types.SignalNone},
		{name: "rsi at buy threshold", close: 99, ema: 100, rsi: 40, expected: types.SignalNone},
		{name: "rsi at sell threshold", close: 101, ema: 100, rsi: 60, expected: types.SignalNone},
		{name: "ema warming up", close: 99, ema: math.NaN(), rsi: 10, expected: types.SignalNone},
		{name: "rsi warming up", close: 99, ema: 100, rsi: math.NaN(), expected: types.SignalNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.close, tt.ema, tt.rsi, thresholds))
		})
	}
}

type StrategyTestSuite struct {
	suite.Suite
	evaluator *TrendFollowing
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

func (suite *StrategyTestSuite) SetupTest() {
	evaluator, err := NewTrendFollowing(DefaultParams())
	suite.Require().NoError(err)
	suite.evaluator = evaluator
}

// fallingBars returns n bars closing at 120, 119, ... with narrow ranges.
func fallingBars(n int) []types.MarketData {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make([]types.MarketData, n)

	for i := range series {
		c := 120 - float64(i)
		series[i] = types.MarketData{
			Symbol: "SYM_A",
			Time:   start.Add(time.Duration(i) * 5 * time.Minute),
			Open:   c + 0.1,
			High:   c + 0.15,
			Low:    c - 0.05,
			Close:  c,
			Volume: 100,
		}
	}

	return series
}

func withBar(series []types.MarketData, open, high, low, close float64) []types.MarketData {
	last := series[len(series)-1]

	return append(series, types.MarketData{
		Symbol: last.Symbol,
		Time:   last.Time.Add(5 * time.Minute),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: 100,
	})
}

func (suite *StrategyTestSuite) TestNewTrendFollowingRejectsInvalidParams() {
	params := DefaultParams()
	params.Thresholds = Thresholds{BuyRSIBelow: 70, SellRSIAbove: 30}

	_, err := NewTrendFollowing(params)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	params = DefaultParams()
	params.Backtest.Margin = 0

	_, err = NewTrendFollowing(params)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *StrategyTestSuite) TestSignalOnFallingSeriesIsBuy() {
	signal, err := suite.evaluator.Signal(fallingBars(20))
	suite.Require().NoError(err)
	suite.Equal(types.SignalBuy, signal)
}

func (suite *StrategyTestSuite) TestSignalOnRisingSeriesIsSell() {
	series := fallingBars(20)
	// mirror into a rising series
	for i := range series {
		series[i].Close = 100 + float64(i)
	}

	signal, err := suite.evaluator.Signal(series)
	suite.Require().NoError(err)
	suite.Equal(types.SignalSell, signal)
}

func (suite *StrategyTestSuite) TestSignalsWarmUpIsNone() {
	signals, err := suite.evaluator.Signals(fallingBars(16))
	suite.Require().NoError(err)

	for i := 0; i < 14; i++ {
		suite.Equal(types.SignalNone, signals[i], "bar %d", i)
	}

	suite.Equal(types.SignalBuy, signals[14])
}

func (suite *StrategyTestSuite) TestSignalInsufficientData() {
	signal, err := suite.evaluator.Signal(fallingBars(10))
	suite.Equal(types.SignalNone, signal)
	suite.True(errors.IsInsufficientDataError(err))
}
