// Package strategy implements the trend-following signal rule and its batch backtest.
package strategy

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/trendscout/internal/indicator"
	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// Evaluator scores a price series.
type Evaluator interface {
	// Signal returns the decision for the latest bar of series.
	Signal(series []types.MarketData) (types.Signal, error)
	// Backtest simulates the rule over the whole series.
	Backtest(series []types.MarketData) (types.BacktestResult, error)
}

// Thresholds are the RSI levels of the rule.
type Thresholds struct {
	BuyRSIBelow  float64 `validate:"gt=0,lt=100"`
	SellRSIAbove float64 `validate:"gt=0,lt=100,gtefield=BuyRSIBelow"`
}

// BacktestParams describe the simulated account. Percent fields are in percent units.
type BacktestParams struct {
	Cash              float64 `validate:"gt=0"`
	Margin            float64 `validate:"gt=0,lte=1"`
	Commission        float64 `validate:"gte=0,lt=1"`
	TradeSizePercent  float64 `validate:"gt=0,lte=100"`
	TakeProfitPercent float64 `validate:"gt=0"`
	StopLossPercent   float64 `validate:"gt=0,lt=100"`
	SlippagePercent   float64 `validate:"gte=0,lt=100"`
}

// Params configure TrendFollowing.
type Params struct {
	EMAPeriod  int `validate:"gte=1"`
	RSIPeriod  int `validate:"gte=2"`
	Thresholds Thresholds
	Backtest   BacktestParams
}

// DefaultParams mirrors the default configuration.
func DefaultParams() Params {
	return Params{
		EMAPeriod: 5,
		RSIPeriod: 14,
		Thresholds: Thresholds{
			BuyRSIBelow:  40,
			SellRSIAbove: 60,
		},
		Backtest: BacktestParams{
			Cash:              1000,
			Margin:            0.1,
			Commission:        0.0007,
			TradeSizePercent:  2,
			TakeProfitPercent: 3,
			StopLossPercent:   1,
			SlippagePercent:   0.02,
		},
	}
}

// Decide applies the rule to the latest close, EMA and RSI.
// A NaN input means the indicators are still warming up and yields NONE.
func Decide(close, ema, rsi float64, thresholds Thresholds) types.Signal {
	if math.IsNaN(close) || math.IsNaN(ema) || math.IsNaN(rsi) {
		return types.SignalNone
	}

	if close < ema && rsi < thresholds.BuyRSIBelow {
		return types.SignalBuy
	}

	if close > ema && rsi > thresholds.SellRSIAbove {
		return types.SignalSell
	}

	return types.SignalNone
}

// TrendFollowing buys dips below the EMA on oversold RSI and exits on overbought strength.
type TrendFollowing struct {
	params Params
}

// NewTrendFollowing validates params and returns the evaluator.
func NewTrendFollowing(params Params) (*TrendFollowing, error) {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid strategy parameters", err)
	}

	return &TrendFollowing{
		params: params,
	}, nil
}

// Params returns the configured parameters.
func (s *TrendFollowing) Params() Params {
	return s.params
}

// MinBars is the shortest series that yields a non-NONE signal.
func (s *TrendFollowing) MinBars() int {
	return max(s.params.EMAPeriod, s.params.RSIPeriod+1)
}

// Signal returns the decision for the latest bar of series.
func (s *TrendFollowing) Signal(series []types.MarketData) (types.Signal, error) {
	signals, err := s.Signals(series)
	if err != nil {
		return types.SignalNone, err
	}

	return signals[len(signals)-1], nil
}

// Signals evaluates the rule at every bar of series.
func (s *TrendFollowing) Signals(series []types.MarketData) ([]types.Signal, error) {
	symbol := ""
	if len(series) > 0 {
		symbol = series[0].Symbol
	}

	if len(series) < s.MinBars() {
		return nil, errors.NewInsufficientDataErrorf(s.MinBars(), len(series), symbol,
			"signal for %s needs %d bars, got %d", symbol, s.MinBars(), len(series))
	}

	closes := types.Closes(series)

	ema, err := indicator.EMA(closes, s.params.EMAPeriod)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate EMA", err)
	}

	rsi, err := indicator.RSI(closes, s.params.RSIPeriod)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate RSI", err)
	}

	signals := make([]types.Signal, len(series))
	for i := range series {
		signals[i] = Decide(closes[i], ema[i], rsi[i], s.params.Thresholds)
	}

	return signals, nil
}
