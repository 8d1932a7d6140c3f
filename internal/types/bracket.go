package types

import (
	"github.com/moznion/go-optional"
)

// OrderLeg identifies one of the three orders of a bracket.
type OrderLeg string

// LegStatus is the lifecycle of a single leg submission.
type LegStatus string

// BracketState is the state of a bracket placement attempt.
type BracketState string

const (
	OrderLegEntry      OrderLeg = "ENTRY"
	OrderLegStopLoss   OrderLeg = "STOP_LOSS"
	OrderLegTakeProfit OrderLeg = "TAKE_PROFIT"
)

const (
	LegStatusSubmitted LegStatus = "SUBMITTED"
	LegStatusAccepted  LegStatus = "ACCEPTED"
	LegStatusRejected  LegStatus = "REJECTED"
	// LegStatusUnknown is a leg whose submission failed and whose lookup failed too.
	LegStatusUnknown LegStatus = "UNKNOWN"
)

const (
	BracketStatePending             BracketState = "PENDING"
	BracketStateEntryPlaced         BracketState = "ENTRY_PLACED"
	BracketStateStopPlaced          BracketState = "STOP_PLACED"
	BracketStateProtected           BracketState = "PROTECTED"
	BracketStateAbandoned           BracketState = "ABANDONED"
	BracketStateUnprotectedCritical BracketState = "UNPROTECTED_CRITICAL"
)

// BracketLegs is the fixed submission order of a bracket.
var BracketLegs = []OrderLeg{OrderLegEntry, OrderLegStopLoss, OrderLegTakeProfit}

// Code is the short suffix used in client order ids.
func (l OrderLeg) Code() string {
	switch l {
	case OrderLegEntry:
		return "en"
	case OrderLegStopLoss:
		return "sl"
	case OrderLegTakeProfit:
		return "tp"
	default:
		return "xx"
	}
}

// BracketOrderPlan carries the rounded prices of one bracket attempt.
type BracketOrderPlan struct {
	// AttemptID is a hyphen-less UUID so that "<attempt>-<leg>" fits the 36 character client id limit.
	AttemptID    string          `json:"attempt_id" yaml:"attempt_id"`
	Symbol       string          `json:"symbol" yaml:"symbol"`
	Side         PurchaseType    `json:"side" yaml:"side"`
	Quantity     float64         `json:"quantity" yaml:"quantity"`
	CurrentPrice float64         `json:"current_price" yaml:"current_price"`
	EntryPrice   float64         `json:"entry_price" yaml:"entry_price"`
	StopPrice    float64         `json:"stop_price" yaml:"stop_price"`
	TargetPrice  float64         `json:"target_price" yaml:"target_price"`
	Precision    SymbolPrecision `json:"precision" yaml:"precision"`
}

// ClientOrderID returns the idempotency key of a leg.
func (p BracketOrderPlan) ClientOrderID(leg OrderLeg) string {
	return p.AttemptID + "-" + leg.Code()
}

// Request builds the exchange request of a leg.
func (p BracketOrderPlan) Request(leg OrderLeg) OrderRequest {
	switch leg {
	case OrderLegStopLoss:
		return OrderRequest{
			ClientOrderID:   p.ClientOrderID(leg),
			Symbol:          p.Symbol,
			Side:            p.Side.Opposite(),
			Type:            OrderTypeStopMarket,
			Quantity:        0,
			Price:           0,
			StopPrice:       p.StopPrice,
			ClosePosition:   true,
			WorkingTypeMark: true,
			Precision:       p.Precision,
		}
	case OrderLegTakeProfit:
		return OrderRequest{
			ClientOrderID:   p.ClientOrderID(leg),
			Symbol:          p.Symbol,
			Side:            p.Side.Opposite(),
			Type:            OrderTypeTakeProfitMarket,
			Quantity:        0,
			Price:           0,
			StopPrice:       p.TargetPrice,
			ClosePosition:   true,
			WorkingTypeMark: true,
			Precision:       p.Precision,
		}
	default:
		return OrderRequest{
			ClientOrderID:   p.ClientOrderID(OrderLegEntry),
			Symbol:          p.Symbol,
			Side:            p.Side,
			Type:            OrderTypeLimit,
			Quantity:        p.Quantity,
			Price:           p.EntryPrice,
			StopPrice:       0,
			ClosePosition:   false,
			WorkingTypeMark: false,
			Precision:       p.Precision,
		}
	}
}

// LegResult records what happened to one submitted leg.
type LegResult struct {
	Leg     OrderLeg                `json:"leg"`
	Status  LegStatus               `json:"status"`
	Request OrderRequest            `json:"request"`
	OrderID optional.Option[string] `json:"order_id"`
	Err     error                   `json:"-"`
}

// BracketOutcome is the final state of a bracket attempt with every leg that was submitted.
type BracketOutcome struct {
	Plan  BracketOrderPlan `json:"plan"`
	State BracketState     `json:"state"`
	Legs  []LegResult      `json:"legs"`
}

// Leg returns the result of leg if it was submitted.
func (o BracketOutcome) Leg(leg OrderLeg) optional.Option[LegResult] {
	for _, result := range o.Legs {
		if result.Leg == leg {
			return optional.Some(result)
		}
	}

	return optional.None[LegResult]()
}
