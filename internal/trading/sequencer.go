package trading

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/trendscout/internal/exchange"
	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/metrics"
	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/internal/utils"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// SequencerConfig controls account setup and leg pacing.
type SequencerConfig struct {
	Leverage       int
	MarginMode     types.MarginMode
	LegDelay       time.Duration
	RequestTimeout time.Duration
	Plan           PlanConfig
}

// Sequencer places brackets as ENTRY, then STOP_LOSS, then TAKE_PROFIT.
// A leg that is not accepted halts the sequence. Accepted legs are never rolled back.
type Sequencer struct {
	gateway      exchange.Gateway
	config       SequencerConfig
	alerts       AlertSink
	logger       *logger.Logger
	metrics      *metrics.Recorder
	sleep        func(ctx context.Context, d time.Duration) error
	newAttemptID func() string
}

func NewSequencer(gateway exchange.Gateway, config SequencerConfig, alerts AlertSink, log *logger.Logger, recorder *metrics.Recorder) *Sequencer {
	return &Sequencer{
		gateway:      gateway,
		config:       config,
		alerts:       alerts,
		logger:       log.Named("sequencer"),
		metrics:      recorder,
		sleep:        utils.Sleep,
		newAttemptID: NewAttemptID,
	}
}

// Place implements BracketPlacer.
func (s *Sequencer) Place(ctx context.Context, symbol string, side types.PurchaseType) (types.BracketOutcome, error) {
	abandoned := types.BracketOutcome{
		Plan:  types.BracketOrderPlan{Symbol: symbol, Side: side},
		State: types.BracketStateAbandoned,
		Legs:  nil,
	}

	s.configureAccount(ctx, symbol)

	priceCtx, cancel := s.requestContext(ctx)
	price, err := s.gateway.GetCurrentPrice(priceCtx, symbol)
	cancel()

	if err != nil {
		s.metrics.Bracket(string(abandoned.State))

		return abandoned, err
	}

	precisionCtx, cancel := s.requestContext(ctx)
	precision, err := s.gateway.GetPrecision(precisionCtx, symbol)
	cancel()

	if err != nil {
		s.metrics.Bracket(string(abandoned.State))

		return abandoned, err
	}

	plan, err := BuildPlan(s.newAttemptID(), symbol, side, price, precision, s.config.Plan)
	if err != nil {
		s.metrics.Bracket(string(abandoned.State))

		return abandoned, err
	}

	return s.Execute(ctx, plan)
}

// Execute runs the leg state machine for a prepared plan.
// Once the entry is accepted the protective legs are submitted even if ctx is cancelled.
func (s *Sequencer) Execute(ctx context.Context, plan types.BracketOrderPlan) (types.BracketOutcome, error) {
	outcome := types.BracketOutcome{
		Plan:  plan,
		State: types.BracketStatePending,
		Legs:  make([]types.LegResult, 0, len(types.BracketLegs)),
	}

	s.logger.Info("Placing bracket",
		zap.String("symbol", plan.Symbol),
		zap.String("attempt_id", plan.AttemptID),
		zap.String("side", string(plan.Side)),
		zap.Float64("quantity", plan.Quantity),
		zap.Float64("current_price", plan.CurrentPrice),
		zap.Float64("entry_price", plan.EntryPrice),
		zap.Float64("stop_price", plan.StopPrice),
		zap.Float64("target_price", plan.TargetPrice),
	)

	legCtx := ctx

	for i, leg := range types.BracketLegs {
		if i > 0 {
			_ = s.sleep(legCtx, s.config.LegDelay)
		}

		request := plan.Request(leg)
		result := s.submit(legCtx, leg, request)
		outcome.Legs = append(outcome.Legs, result)

		if result.Status != types.LegStatusAccepted {
			return s.halt(ctx, outcome, result)
		}

		switch leg {
		case types.OrderLegEntry:
			outcome.State = types.BracketStateEntryPlaced
			legCtx = context.WithoutCancel(ctx)
		case types.OrderLegStopLoss:
			outcome.State = types.BracketStateStopPlaced
		case types.OrderLegTakeProfit:
			outcome.State = types.BracketStateProtected
		}
	}

	s.metrics.Bracket(string(outcome.State))
	s.logger.Info("Bracket protected",
		zap.String("symbol", plan.Symbol),
		zap.String("attempt_id", plan.AttemptID),
	)

	return outcome, nil
}

func (s *Sequencer) submit(ctx context.Context, leg types.OrderLeg, request types.OrderRequest) types.LegResult {
	result := types.LegResult{
		Leg:     leg,
		Status:  types.LegStatusSubmitted,
		Request: request,
		OrderID: optional.None[string](),
		Err:     nil,
	}

	requestCtx, cancel := s.requestContext(ctx)
	ack, err := s.gateway.PlaceOrder(requestCtx, request)
	cancel()

	result.Status = types.LegStatusAccepted
	if err != nil {
		result.Status = types.LegStatusRejected
		if isStatusUnknown(err) {
			ack, result.Status, err = s.resolve(ctx, request, err)
		}
	}

	s.metrics.OrderLeg(string(leg), string(result.Status))

	if result.Status != types.LegStatusAccepted {
		result.Err = err

		s.logger.Error("Order leg not placed",
			zap.String("symbol", request.Symbol),
			zap.String("leg", string(leg)),
			zap.String("client_order_id", request.ClientOrderID),
			zap.String("status", string(result.Status)),
			zap.Error(err),
		)

		return result
	}

	result.OrderID = optional.Some(ack.OrderID)

	s.logger.Info("Order leg accepted",
		zap.String("symbol", request.Symbol),
		zap.String("leg", string(leg)),
		zap.String("client_order_id", request.ClientOrderID),
		zap.String("order_id", ack.OrderID),
		zap.String("status", ack.Status),
	)

	return result
}

// resolve looks up a leg whose submission failed without a verdict from the exchange.
// A found order is accepted, a missing one rejected. If the lookup fails as well the status stays unknown.
func (s *Sequencer) resolve(ctx context.Context, request types.OrderRequest, placeErr error) (types.OrderAck, types.LegStatus, error) {
	lookupCtx, cancel := s.requestContext(context.WithoutCancel(ctx))
	defer cancel()

	order, err := s.gateway.GetOrder(lookupCtx, request.Symbol, request.ClientOrderID)
	if err != nil {
		return types.OrderAck{}, types.LegStatusUnknown, errors.Wrapf(errors.ErrCodeOrderStatusUnknown, placeErr,
			"order %s for %s could not be looked up (%v)", request.ClientOrderID, request.Symbol, err)
	}

	ack, err := order.Take()
	if err != nil {
		return types.OrderAck{}, types.LegStatusRejected, placeErr
	}

	s.logger.Warn("Order found after failed submission",
		zap.String("symbol", request.Symbol),
		zap.String("client_order_id", request.ClientOrderID),
		zap.String("order_id", ack.OrderID),
		zap.NamedError("submit_error", placeErr),
	)

	return ack, types.LegStatusAccepted, nil
}

// halt finishes a bracket after a leg that was not accepted.
func (s *Sequencer) halt(ctx context.Context, outcome types.BracketOutcome, failed types.LegResult) (types.BracketOutcome, error) {
	plan := outcome.Plan

	if failed.Leg == types.OrderLegEntry && failed.Status == types.LegStatusRejected {
		outcome.State = types.BracketStateAbandoned
		s.metrics.Bracket(string(outcome.State))

		return outcome, errors.Wrapf(errors.ErrCodeLegRejected, failed.Err, "entry order for %s rejected", plan.Symbol)
	}

	if failed.Leg == types.OrderLegEntry {
		s.cancelEntry(ctx, plan)
	}

	outcome.State = types.BracketStateUnprotectedCritical
	s.metrics.Bracket(string(outcome.State))

	entryOrderID := ""
	if entry, err := outcome.Leg(types.OrderLegEntry).Take(); err == nil {
		entryOrderID = entry.OrderID.TakeOr("")
	}

	alert := &errors.UnprotectedPositionError{
		Symbol:       plan.Symbol,
		AttemptID:    plan.AttemptID,
		EntryOrderID: entryOrderID,
		FailedLeg:    string(failed.Leg),
		Cause:        failed.Err,
	}

	if s.alerts != nil {
		s.alerts.Critical(context.WithoutCancel(ctx), alert)
	}

	return outcome, alert
}

// cancelEntry withdraws an entry of unknown status. A fill that already happened is not undone.
func (s *Sequencer) cancelEntry(ctx context.Context, plan types.BracketOrderPlan) {
	cancelCtx, cancel := s.requestContext(context.WithoutCancel(ctx))
	defer cancel()

	if err := s.gateway.CancelOpenOrders(cancelCtx, plan.Symbol); err != nil {
		s.logger.Error("Failed to cancel entry of unknown status",
			zap.String("symbol", plan.Symbol),
			zap.String("client_order_id", plan.ClientOrderID(types.OrderLegEntry)),
			zap.Error(err),
		)

		return
	}

	s.logger.Warn("Cancelled entry of unknown status",
		zap.String("symbol", plan.Symbol),
		zap.String("client_order_id", plan.ClientOrderID(types.OrderLegEntry)),
	)
}

// configureAccount applies leverage and margin mode. Failures are logged only.
func (s *Sequencer) configureAccount(ctx context.Context, symbol string) {
	leverageCtx, cancel := s.requestContext(ctx)
	defer cancel()

	if err := s.gateway.SetLeverage(leverageCtx, symbol, s.config.Leverage); err != nil {
		s.logger.Warn("Failed to set leverage",
			zap.String("symbol", symbol),
			zap.Int("leverage", s.config.Leverage),
			zap.Error(err),
		)
	}

	marginCtx, cancelMargin := s.requestContext(ctx)
	defer cancelMargin()

	if err := s.gateway.SetMarginMode(marginCtx, symbol, s.config.MarginMode); err != nil {
		s.logger.Warn("Failed to set margin mode",
			zap.String("symbol", symbol),
			zap.String("margin_mode", string(s.config.MarginMode)),
			zap.Error(err),
		)
	}
}

func (s *Sequencer) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.config.RequestTimeout)
}

// isStatusUnknown reports whether a failed submission may still have reached the exchange.
func isStatusUnknown(err error) bool {
	return errors.HasCode(err, errors.ErrCodeOrderStatusUnknown) || errors.Is(err, context.DeadlineExceeded)
}
