package trading

import (
	"context"
	"slices"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/trendscout/internal/candidate"
	"github.com/rxtech-lab/trendscout/internal/exchange"
	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/marketdata"
	"github.com/rxtech-lab/trendscout/internal/metrics"
	"github.com/rxtech-lab/trendscout/internal/strategy"
	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/internal/utils"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// CoordinatorConfig controls the trading loop.
type CoordinatorConfig struct {
	Timeframe      string
	SeriesLimit    int
	PollInterval   time.Duration
	SymbolPause    time.Duration
	RequestTimeout time.Duration
	Volume         float64
	Leverage       int
	QuoteAsset     string
	AllowShort     bool
}

// Coordinator walks the candidate set and opens brackets on fresh signals.
type Coordinator struct {
	config     CoordinatorConfig
	candidates *candidate.Set
	cooldown   *candidate.Cooldown
	gateway    exchange.Gateway
	data       marketdata.Provider
	evaluator  strategy.Evaluator
	placer     BracketPlacer
	logger     *logger.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewCoordinator(
	config CoordinatorConfig,
	candidates *candidate.Set,
	cooldown *candidate.Cooldown,
	gateway exchange.Gateway,
	data marketdata.Provider,
	evaluator strategy.Evaluator,
	placer BracketPlacer,
	log *logger.Logger,
	recorder *metrics.Recorder,
) (*Coordinator, error) {
	if _, err := marketdata.ParseTimeframe(config.Timeframe); err != nil {
		return nil, err
	}

	if config.SeriesLimit <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "series limit must be positive, got %d", config.SeriesLimit)
	}

	if config.Volume <= 0 || config.Leverage <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "volume %v and leverage %d must be positive", config.Volume, config.Leverage)
	}

	return &Coordinator{
		config:     config,
		candidates: candidates,
		cooldown:   cooldown,
		gateway:    gateway,
		data:       data,
		evaluator:  evaluator,
		placer:     placer,
		logger:     log.Named("coordinator"),
		metrics:    recorder,
		now:        time.Now,
		sleep:      utils.Sleep,
	}, nil
}

// Run iterates until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) error {
	c.logger.Info("Trading loop started",
		zap.Duration("cooldown", c.cooldown.Window()),
		zap.Float64("volume", c.config.Volume),
		zap.Int("leverage", c.config.Leverage),
		zap.Bool("allow_short", c.config.AllowShort),
	)

	for {
		outcomes := c.RunIteration(ctx)
		if ctx.Err() != nil {
			c.logger.Info("Trading loop stopped")

			return nil
		}

		// every symbol cooling down, wait instead of spinning
		if len(outcomes) > 0 && !slices.ContainsFunc(outcomes, func(o EvaluationOutcome) bool { return o.Result != ResultSkippedCooldown }) {
			if err := c.sleep(ctx, c.config.PollInterval); err != nil {
				c.logger.Info("Trading loop stopped")

				return nil
			}
		}
	}
}

// RunIteration evaluates every symbol of the current snapshot once.
// An empty set waits one poll interval and returns no outcomes.
func (c *Coordinator) RunIteration(ctx context.Context) []EvaluationOutcome {
	snapshot := c.candidates.Snapshot()
	if snapshot.IsEmpty() {
		c.logger.Debug("Candidate set is empty, waiting", zap.Duration("poll_interval", c.config.PollInterval))
		_ = c.sleep(ctx, c.config.PollInterval)

		return nil
	}

	symbols := snapshot.Symbols()
	outcomes := make([]EvaluationOutcome, 0, len(symbols))

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			break
		}

		outcome := c.Evaluate(ctx, symbol)
		outcomes = append(outcomes, outcome)

		if outcome.Result != ResultSkippedCooldown {
			if err := c.sleep(ctx, c.config.SymbolPause); err != nil {
				break
			}
		}
	}

	return outcomes
}

// Evaluate runs the per-symbol checks and dispatches a bracket on a tradable signal.
// Every failure is folded into the outcome.
func (c *Coordinator) Evaluate(ctx context.Context, symbol string) EvaluationOutcome {
	now := c.now()
	outcome := EvaluationOutcome{
		Symbol:    symbol,
		Result:    ResultFailed,
		Signal:    types.SignalNone,
		Bracket:   optional.None[types.BracketOutcome](),
		Err:       nil,
		Evaluated: now,
	}

	if !c.cooldown.TryAcquire(symbol, now) {
		outcome.Result = ResultSkippedCooldown

		return c.finish(outcome)
	}

	hasPosition, err := c.hasOpenPosition(ctx, symbol)
	if err != nil {
		outcome.Err = err

		return c.finish(outcome)
	}

	if hasPosition {
		outcome.Result = ResultSkippedPosition

		return c.finish(outcome)
	}

	if err := c.cancelStaleOrders(ctx, symbol); err != nil {
		outcome.Err = err

		return c.finish(outcome)
	}

	signal, err := c.signal(ctx, symbol)
	if err != nil {
		outcome.Err = err

		return c.finish(outcome)
	}

	outcome.Signal = signal

	side, ok := signal.Side()
	if !ok {
		outcome.Result = ResultNoSignal

		return c.finish(outcome)
	}

	if side == types.PurchaseTypeSell && !c.config.AllowShort {
		outcome.Result = ResultSkippedShort

		return c.finish(outcome)
	}

	if err := c.checkFunds(ctx, symbol); err != nil {
		outcome.Err = err
		if errors.IsInsufficientFundsError(err) {
			outcome.Result = ResultInsufficientFunds
		}

		return c.finish(outcome)
	}

	bracket, err := c.placer.Place(ctx, symbol, side)
	outcome.Bracket = optional.Some(bracket)
	outcome.Err = err

	switch bracket.State {
	case types.BracketStateProtected:
		outcome.Result = ResultPlaced
		c.verify(ctx, symbol)
	case types.BracketStateUnprotectedCritical:
		outcome.Result = ResultUnprotected
	default:
		outcome.Result = ResultAbandoned
	}

	return c.finish(outcome)
}

func (c *Coordinator) hasOpenPosition(ctx context.Context, symbol string) (bool, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	positions, err := c.gateway.GetOpenPositions(requestCtx)
	if err != nil {
		return false, err
	}

	return slices.Contains(positions, symbol), nil
}

// cancelStaleOrders removes leftovers of an earlier bracket whose position has closed.
func (c *Coordinator) cancelStaleOrders(ctx context.Context, symbol string) error {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	orders, err := c.gateway.GetOpenOrders(requestCtx)
	if err != nil {
		return err
	}

	if !slices.Contains(orders, symbol) {
		return nil
	}

	c.logger.Info("Cancelling stale open orders", zap.String("symbol", symbol))

	cancelCtx, cancelRequest := c.requestContext(ctx)
	defer cancelRequest()

	return c.gateway.CancelOpenOrders(cancelCtx, symbol)
}

func (c *Coordinator) signal(ctx context.Context, symbol string) (types.Signal, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	series, err := c.data.GetSeries(requestCtx, symbol, c.config.Timeframe, c.config.SeriesLimit)
	if err != nil {
		return types.SignalNone, err
	}

	return c.evaluator.Signal(series)
}

func (c *Coordinator) checkFunds(ctx context.Context, symbol string) error {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	balance, err := c.gateway.GetBalance(requestCtx, c.config.QuoteAsset)
	if err != nil {
		return err
	}

	required := utils.RequiredMargin(c.config.Volume, c.config.Leverage)
	if balance < required {
		return &errors.InsufficientFundsError{
			Symbol:    symbol,
			Required:  required,
			Available: balance,
		}
	}

	return nil
}

// verify checks that the placed bracket shows up as open orders and logs the remaining balance.
func (c *Coordinator) verify(ctx context.Context, symbol string) {
	ordersCtx, cancel := c.requestContext(ctx)
	defer cancel()

	orders, err := c.gateway.GetOpenOrders(ordersCtx)

	switch {
	case err != nil:
		c.logger.Warn("Failed to verify open orders", zap.String("symbol", symbol), zap.Error(err))
	case !slices.Contains(orders, symbol):
		c.logger.Warn("Placed bracket has no open orders", zap.String("symbol", symbol))
	}

	balanceCtx, cancelBalance := c.requestContext(ctx)
	defer cancelBalance()

	balance, err := c.gateway.GetBalance(balanceCtx, c.config.QuoteAsset)
	if err != nil {
		c.logger.Warn("Failed to read balance after order", zap.String("symbol", symbol), zap.Error(err))

		return
	}

	c.logger.Info("Balance after order",
		zap.String("symbol", symbol),
		zap.String("asset", c.config.QuoteAsset),
		zap.Float64("balance", balance),
	)
}

func (c *Coordinator) finish(outcome EvaluationOutcome) EvaluationOutcome {
	c.metrics.Evaluation(string(outcome.Result))

	fields := []zap.Field{
		zap.String("symbol", outcome.Symbol),
		zap.String("result", string(outcome.Result)),
		zap.String("signal", outcome.Signal.String()),
	}

	if bracket, err := outcome.Bracket.Take(); err == nil {
		fields = append(fields,
			zap.String("bracket_state", string(bracket.State)),
			zap.String("attempt_id", bracket.Plan.AttemptID),
		)
	}

	switch {
	case outcome.Result == ResultSkippedCooldown:
		c.logger.Debug("Symbol cooling down",
			append(fields, zap.Duration("remaining", c.cooldown.Remaining(outcome.Symbol, outcome.Evaluated)))...)
	case outcome.IsSkipped():
		c.logger.Info("Symbol skipped", fields...)
	case outcome.Result == ResultInsufficientFunds:
		c.logger.Warn("Insufficient funds", append(fields, zap.Error(outcome.Err))...)
	case outcome.Err != nil:
		c.logger.Error("Symbol evaluation failed", append(fields, zap.Error(outcome.Err))...)
	default:
		c.logger.Info("Symbol evaluated", fields...)
	}

	return outcome
}

func (c *Coordinator) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.config.RequestTimeout)
}
