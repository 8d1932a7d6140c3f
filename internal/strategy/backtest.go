package strategy

import (
	"math"
	"time"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

type position struct {
	entryTime  time.Time
	entryPrice float64
	quantity   float64
	entryFee   float64
	takeProfit float64
	stopLoss   float64
}

type simulation struct {
	params BacktestParams
	cash   float64
	open   *position
	trades []types.SimulatedTrade
	peak   float64
	maxDD  float64
}

// Backtest replays the rule over series bar by bar.
//
// A signal seen at the close of bar i is filled at the open of bar i+1. Long positions are
// opened on BUY and closed on SELL, on their stop-loss or take-profit, or at the last close.
// When a bar touches both the stop and the target the stop is assumed to fill first.
func (s *TrendFollowing) Backtest(series []types.MarketData) (types.BacktestResult, error) {
	if len(series) < s.MinBars()+1 {
		symbol := ""
		if len(series) > 0 {
			symbol = series[0].Symbol
		}

		return types.BacktestResult{}, errors.NewInsufficientDataErrorf(s.MinBars()+1, len(series), symbol,
			"backtest for %s needs %d bars, got %d", symbol, s.MinBars()+1, len(series))
	}

	signals, err := s.Signals(series)
	if err != nil {
		return types.BacktestResult{}, errors.Wrap(errors.ErrCodeBacktestFailed, "failed to evaluate signals", err)
	}

	sim := &simulation{
		params: s.params.Backtest,
		cash:   s.params.Backtest.Cash,
		open:   nil,
		trades: nil,
		peak:   s.params.Backtest.Cash,
		maxDD:  0,
	}

	pending := types.SignalNone
	for i, bar := range series {
		switch {
		case pending == types.SignalBuy && sim.open == nil:
			sim.enter(bar)
		case pending == types.SignalSell && sim.open != nil:
			sim.exit(bar, sim.slip(bar.Open, -1), types.ExitReasonSignal)
		}

		pending = types.SignalNone

		if sim.open != nil {
			sim.checkStops(bar)
		}

		sim.mark(bar.Close)

		if i < len(series)-1 {
			pending = signals[i]
		}
	}

	last := series[len(series)-1]
	if sim.open != nil {
		sim.exit(last, last.Close, types.ExitReasonEndOfData)
		sim.mark(last.Close)
	}

	return sim.result(series), nil
}

func (sim *simulation) slip(price float64, direction float64) float64 {
	return price * (1 + direction*sim.params.SlippagePercent/100)
}

func (sim *simulation) equity(price float64) float64 {
	if sim.open == nil {
		return sim.cash
	}

	return sim.cash + sim.open.quantity*(price-sim.open.entryPrice)
}

func (sim *simulation) enter(bar types.MarketData) {
	price := sim.slip(bar.Open, 1)
	if price <= 0 {
		return
	}

	margin := sim.equity(bar.Open) * sim.params.TradeSizePercent / 100
	notional := margin / sim.params.Margin
	quantity := notional / price
	fee := notional * sim.params.Commission

	sim.cash -= fee
	sim.open = &position{
		entryTime:  bar.Time,
		entryPrice: price,
		quantity:   quantity,
		entryFee:   fee,
		takeProfit: price * (1 + sim.params.TakeProfitPercent/100),
		stopLoss:   price * (1 - sim.params.StopLossPercent/100),
	}
}

func (sim *simulation) checkStops(bar types.MarketData) {
	pos := sim.open

	switch {
	case bar.Low <= pos.stopLoss:
		// a gap through the stop fills at the open
		sim.exit(bar, math.Min(bar.Open, pos.stopLoss), types.ExitReasonStopLoss)
	case bar.High >= pos.takeProfit:
		sim.exit(bar, math.Max(bar.Open, pos.takeProfit), types.ExitReasonTakeProfit)
	}
}

func (sim *simulation) exit(bar types.MarketData, price float64, reason string) {
	pos := sim.open
	fee := pos.quantity * price * sim.params.Commission
	gross := pos.quantity * (price - pos.entryPrice)
	pnl := gross - pos.entryFee - fee

	sim.cash += gross - fee
	sim.trades = append(sim.trades, types.SimulatedTrade{
		EntryTime:     pos.entryTime,
		ExitTime:      bar.Time,
		EntryPrice:    pos.entryPrice,
		ExitPrice:     price,
		Quantity:      pos.quantity,
		PnL:           pnl,
		ReturnPercent: pnl / (pos.quantity * pos.entryPrice) * 100,
		ExitReason:    reason,
	})
	sim.open = nil
}

func (sim *simulation) mark(price float64) {
	current := sim.equity(price)
	if current > sim.peak {
		sim.peak = current
	}

	if sim.peak > 0 {
		drawdown := (sim.peak - current) / sim.peak * 100
		if drawdown > sim.maxDD {
			sim.maxDD = drawdown
		}
	}
}

func (sim *simulation) result(series []types.MarketData) types.BacktestResult {
	start := sim.params.Cash
	final := sim.cash

	result := types.BacktestResult{
		Symbol:            series[0].Symbol,
		Start:             series[0].Time,
		End:               series[len(series)-1].Time,
		Bars:              len(series),
		Trades:            len(sim.trades),
		ReturnPercent:     (final - start) / start * 100,
		WinRatePercent:    math.NaN(),
		EquityStart:       start,
		EquityFinal:       final,
		EquityPeak:        sim.peak,
		MaxDrawdown:       sim.maxDD,
		ProfitFactor:      math.NaN(),
		ExpectancyPercent: math.NaN(),
		SQN:               math.NaN(),
		TradeLog:          sim.trades,
	}

	if len(sim.trades) == 0 {
		return result
	}

	var wins int
	var grossProfit, grossLoss, sumPnL, sumReturn float64

	for _, trade := range sim.trades {
		sumPnL += trade.PnL
		sumReturn += trade.ReturnPercent

		if trade.PnL > 0 {
			wins++
			grossProfit += trade.PnL
		} else {
			grossLoss += -trade.PnL
		}
	}

	n := float64(len(sim.trades))
	result.WinRatePercent = float64(wins) / n * 100
	result.ExpectancyPercent = sumReturn / n

	if grossLoss > 0 {
		result.ProfitFactor = grossProfit / grossLoss
	} else if grossProfit > 0 {
		result.ProfitFactor = math.Inf(1)
	}

	if len(sim.trades) > 1 {
		mean := sumPnL / n

		var variance float64
		for _, trade := range sim.trades {
			variance += (trade.PnL - mean) * (trade.PnL - mean)
		}

		stdev := math.Sqrt(variance / (n - 1))
		if stdev > 0 {
			result.SQN = math.Sqrt(n) * mean / stdev
		}
	}

	return result
}
