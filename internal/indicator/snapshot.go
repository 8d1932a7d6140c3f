package indicator

import (
	"math"

	"github.com/rxtech-lab/trendscout/internal/types"
)

// Periods configures TakeSnapshot.
type Periods struct {
	EMA                int
	SMA                int
	RSI                int
	MACDFast           int
	MACDSlow           int
	MACDSignal         int
	Bollinger          int
	BollingerDeviation float64
	ATR                int
}

// DefaultPeriods uses the signal rule periods for EMA and RSI and the usual defaults elsewhere.
func DefaultPeriods(emaPeriod, rsiPeriod int) Periods {
	return Periods{
		EMA:                emaPeriod,
		SMA:                20,
		RSI:                rsiPeriod,
		MACDFast:           12,
		MACDSlow:           26,
		MACDSignal:         9,
		Bollinger:          20,
		BollingerDeviation: 2,
		ATR:                14,
	}
}

// Snapshot holds the latest value of every indicator. Values without enough history are NaN.
type Snapshot struct {
	Close          float64 `json:"close"`
	EMA            float64 `json:"ema"`
	SMA            float64 `json:"sma"`
	RSI            float64 `json:"rsi"`
	MACD           float64 `json:"macd"`
	MACDSignal     float64 `json:"macd_signal"`
	BollingerUpper float64 `json:"bollinger_upper"`
	BollingerLower float64 `json:"bollinger_lower"`
	ATR            float64 `json:"atr"`
}

// TakeSnapshot computes every indicator over series and keeps the last value of each.
func TakeSnapshot(series []types.MarketData, periods Periods) Snapshot {
	closes := types.Closes(series)
	snapshot := Snapshot{
		Close:          Last(closes),
		EMA:            math.NaN(),
		SMA:            math.NaN(),
		RSI:            math.NaN(),
		MACD:           math.NaN(),
		MACDSignal:     math.NaN(),
		BollingerUpper: math.NaN(),
		BollingerLower: math.NaN(),
		ATR:            math.NaN(),
	}

	if ema, err := EMA(closes, periods.EMA); err == nil {
		snapshot.EMA = Last(ema)
	}

	if sma, err := SMA(closes, periods.SMA); err == nil {
		snapshot.SMA = Last(sma)
	}

	if rsi, err := RSI(closes, periods.RSI); err == nil {
		snapshot.RSI = Last(rsi)
	}

	if macd, err := MACD(closes, periods.MACDFast, periods.MACDSlow, periods.MACDSignal); err == nil {
		snapshot.MACD = Last(macd.MACD)
		snapshot.MACDSignal = Last(macd.Signal)
	}

	if bands, err := BollingerBands(closes, periods.Bollinger, periods.BollingerDeviation); err == nil {
		snapshot.BollingerUpper = Last(bands.Upper)
		snapshot.BollingerLower = Last(bands.Lower)
	}

	if atr, err := ATR(series, periods.ATR); err == nil {
		snapshot.ATR = Last(atr)
	}

	return snapshot
}
