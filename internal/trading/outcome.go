package trading

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/trendscout/internal/types"
)

// EvaluationResult classifies what happened to one symbol in one iteration.
type EvaluationResult string

const (
	ResultSkippedCooldown   EvaluationResult = "skipped_cooldown"
	ResultSkippedPosition   EvaluationResult = "skipped_position"
	ResultNoSignal          EvaluationResult = "no_signal"
	ResultSkippedShort      EvaluationResult = "skipped_short"
	ResultInsufficientFunds EvaluationResult = "insufficient_funds"
	ResultPlaced            EvaluationResult = "placed"
	ResultAbandoned         EvaluationResult = "abandoned"
	ResultUnprotected       EvaluationResult = "unprotected"
	ResultFailed            EvaluationResult = "failed"
)

// EvaluationOutcome is the per-symbol result of a coordinator iteration.
type EvaluationOutcome struct {
	Symbol    string
	Result    EvaluationResult
	Signal    types.Signal
	Bracket   optional.Option[types.BracketOutcome]
	Err       error
	Evaluated time.Time
}

// IsSkipped reports whether the symbol was left alone without an error.
func (o EvaluationOutcome) IsSkipped() bool {
	switch o.Result {
	case ResultSkippedCooldown, ResultSkippedPosition, ResultNoSignal, ResultSkippedShort:
		return true
	default:
		return false
	}
}
