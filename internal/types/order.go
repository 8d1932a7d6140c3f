package types

import (
	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

type PurchaseType string

type OrderType string

type MarginMode string

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

const (
	OrderTypeLimit            OrderType = "LIMIT"
	OrderTypeStopMarket       OrderType = "STOP_MARKET"
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
)

const (
	MarginModeIsolated MarginMode = "ISOLATED"
	MarginModeCrossed  MarginMode = "CROSSED"
)

// Opposite returns the closing side of a position opened with p.
func (p PurchaseType) Opposite() PurchaseType {
	if p == PurchaseTypeBuy {
		return PurchaseTypeSell
	}

	return PurchaseTypeBuy
}

// SymbolPrecision is the number of decimals the exchange accepts for a symbol.
type SymbolPrecision struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Price    int    `json:"price" yaml:"price" validate:"gte=0"`
	Quantity int    `json:"quantity" yaml:"quantity" validate:"gte=0"`
}

// OrderRequest is one leg as submitted to the exchange gateway.
// Prices and quantity are already rounded to the symbol's precision.
type OrderRequest struct {
	ClientOrderID string       `json:"client_order_id" validate:"required,max=36"`
	Symbol        string       `json:"symbol" validate:"required"`
	Side          PurchaseType `json:"side" validate:"required,oneof=BUY SELL"`
	Type          OrderType    `json:"type" validate:"required,oneof=LIMIT STOP_MARKET TAKE_PROFIT_MARKET"`
	// Quantity is required for LIMIT orders, close-position orders carry none.
	Quantity float64 `json:"quantity" validate:"required_if=Type LIMIT,gte=0"`
	// Price is the limit price of a LIMIT order.
	Price float64 `json:"price" validate:"required_if=Type LIMIT,gte=0"`
	// StopPrice triggers STOP_MARKET and TAKE_PROFIT_MARKET orders.
	StopPrice     float64 `json:"stop_price" validate:"required_unless=Type LIMIT,gte=0"`
	ClosePosition bool    `json:"close_position"`
	// WorkingTypeMark selects the mark price as the trigger source.
	WorkingTypeMark bool `json:"working_type_mark"`
	// Precision sets the decimals quantity and prices are sent with.
	Precision SymbolPrecision `json:"precision"`
}

// OrderAck is the exchange acknowledgement of an accepted leg.
type OrderAck struct {
	OrderID       string `json:"order_id"`
	ClientOrderID string `json:"client_order_id"`
	Status        string `json:"status"`
}

// Validate validates the OrderRequest struct.
func (o *OrderRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid order request", err)
	}

	return nil
}
