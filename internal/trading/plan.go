package trading

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/internal/utils"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// PlanConfig holds the sizing and distance parameters of a bracket. Percent fields are in percent units.
type PlanConfig struct {
	Volume             float64
	TakeProfitPercent  float64
	StopLossPercent    float64
	EntryOffsetPercent float64
}

// NewAttemptID returns a UUID without hyphens.
func NewAttemptID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// BuildPlan derives the rounded entry, stop and target of a bracket from the current price.
// The entry sits below the price for a BUY and above it for a SELL. Stop and target are
// measured from the rounded entry.
func BuildPlan(attemptID, symbol string, side types.PurchaseType, currentPrice float64, precision types.SymbolPrecision, config PlanConfig) (types.BracketOrderPlan, error) {
	if currentPrice <= 0 {
		return types.BracketOrderPlan{}, errors.Newf(errors.ErrCodeInvalidParameter, "invalid current price %v for %s", currentPrice, symbol)
	}

	if precision.Price < 0 || precision.Quantity < 0 {
		return types.BracketOrderPlan{}, errors.Newf(errors.ErrCodeInvalidPrecision, "invalid precision for %s: price %d, quantity %d",
			symbol, precision.Price, precision.Quantity)
	}

	var direction float64

	switch side {
	case types.PurchaseTypeBuy:
		direction = 1
	case types.PurchaseTypeSell:
		direction = -1
	default:
		return types.BracketOrderPlan{}, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported order side: %s", side)
	}

	entry := utils.RoundToDecimalPrecision(utils.AdjustByPercent(currentPrice, -direction*config.EntryOffsetPercent), precision.Price)
	stop := utils.RoundToDecimalPrecision(utils.AdjustByPercent(entry, -direction*config.StopLossPercent), precision.Price)
	target := utils.RoundToDecimalPrecision(utils.AdjustByPercent(entry, direction*config.TakeProfitPercent), precision.Price)

	quantity := utils.CalculateOrderQuantity(config.Volume, currentPrice, precision.Quantity)
	if quantity <= 0 {
		return types.BracketOrderPlan{}, errors.Newf(errors.ErrCodeQuantityTooSmall,
			"volume %v at price %v rounds to zero quantity with %d decimals for %s",
			config.Volume, currentPrice, precision.Quantity, symbol)
	}

	if entry <= 0 || stop <= 0 || target <= 0 {
		return types.BracketOrderPlan{}, errors.Newf(errors.ErrCodeInvalidBracket,
			"bracket prices for %s round to zero: entry %v, stop %v, target %v", symbol, entry, stop, target)
	}

	return types.BracketOrderPlan{
		AttemptID:    attemptID,
		Symbol:       symbol,
		Side:         side,
		Quantity:     quantity,
		CurrentPrice: currentPrice,
		EntryPrice:   entry,
		StopPrice:    stop,
		TargetPrice:  target,
		Precision:    precision,
	}, nil
}
