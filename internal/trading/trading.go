// Package trading runs the live loop over the candidate set and places bracket orders.
package trading

import (
	"context"

	"github.com/rxtech-lab/trendscout/internal/types"
)

// BracketPlacer opens a protected position on symbol.
type BracketPlacer interface {
	// Place configures the symbol, builds the plan from the current price and submits
	// the legs in order. The outcome is returned together with any error.
	Place(ctx context.Context, symbol string, side types.PurchaseType) (types.BracketOutcome, error)
}
