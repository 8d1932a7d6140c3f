package types

// Signal is the decision of the trend-following rule for the latest bar.
type Signal string

const (
	// SignalBuy means the close is below the EMA and RSI is oversold.
	SignalBuy Signal = "BUY"
	// SignalSell means the close is above the EMA and RSI is overbought.
	SignalSell Signal = "SELL"
	// SignalNone means no action.
	SignalNone Signal = "NONE"
)

// Side maps an actionable signal to the entry order side.
func (s Signal) Side() (PurchaseType, bool) {
	switch s {
	case SignalBuy:
		return PurchaseTypeBuy, true
	case SignalSell:
		return PurchaseTypeSell, true
	default:
		return "", false
	}
}

func (s Signal) String() string {
	return string(s)
}
