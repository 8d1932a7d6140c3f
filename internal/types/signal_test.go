package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalSide(t *testing.T) {
	tests := []struct {
		name       string
		signal     Signal
		side       PurchaseType
		actionable bool
	}{
		{name: "buy", signal: SignalBuy, side: PurchaseTypeBuy, actionable: true},
		{name: "sell", signal: SignalSell, side: PurchaseTypeSell, actionable: true},
		{name: "none", signal: SignalNone, side: "", actionable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, ok := tt.signal.Side()
			assert.Equal(t, tt.side, side)
			assert.Equal(t, tt.actionable, ok)
		})
	}
}

func TestPurchaseTypeOpposite(t *testing.T) {
	assert.Equal(t, PurchaseTypeSell, PurchaseTypeBuy.Opposite())
	assert.Equal(t, PurchaseTypeBuy, PurchaseTypeSell.Opposite())
}
