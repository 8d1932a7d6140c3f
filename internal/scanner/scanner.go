// Package scanner periodically backtests the symbol universe and publishes the profitable
// symbols as the candidate set of the trading loop.
package scanner

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/rxtech-lab/trendscout/internal/candidate"
	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/marketdata"
	"github.com/rxtech-lab/trendscout/internal/metrics"
	"github.com/rxtech-lab/trendscout/internal/strategy"
	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/internal/utils"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

const (
	UniverseExchange = "exchange"
	UniverseStatic   = "static"

	// universeRetryDelay replaces the scan interval when no universe could be resolved yet.
	universeRetryDelay = time.Minute
)

// SymbolLister lists the tradable symbols quoted in an asset.
type SymbolLister interface {
	ListSymbols(ctx context.Context, quoteAsset string) ([]string, error)
}

// ProgressFunc is called after every scanned symbol.
type ProgressFunc func(done, total int, symbol string)

// Config controls a Scanner.
type Config struct {
	Timeframe              string
	LookbackDays           int
	ProfitThresholdPercent float64
	Interval               time.Duration
	RequestTimeout         time.Duration
	UniverseSource         string
	QuoteAsset             string
	Symbols                []string
}

// Scanner rescores the universe once per interval.
type Scanner struct {
	config       Config
	lookbackBars int
	data         marketdata.Provider
	lister       SymbolLister
	evaluator    strategy.Evaluator
	candidates   *candidate.Set
	logger       *logger.Logger
	metrics      *metrics.Recorder
	progress     ProgressFunc
	universe     []string
	now          func() time.Time
}

// New creates a scanner. lister may be nil for a static universe, recorder may be nil.
func New(
	config Config,
	data marketdata.Provider,
	lister SymbolLister,
	evaluator strategy.Evaluator,
	candidates *candidate.Set,
	log *logger.Logger,
	recorder *metrics.Recorder,
) (*Scanner, error) {
	timeframe, err := marketdata.ParseTimeframe(config.Timeframe)
	if err != nil {
		return nil, err
	}

	if config.LookbackDays <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "lookback days must be positive, got %d", config.LookbackDays)
	}

	switch config.UniverseSource {
	case UniverseExchange:
		if lister == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "exchange universe requires a symbol lister")
		}
	case UniverseStatic:
		if len(config.Symbols) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "static universe requires at least one symbol")
		}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported universe source: %s", config.UniverseSource)
	}

	return &Scanner{
		config:       config,
		lookbackBars: timeframe.BarsForDays(config.LookbackDays),
		data:         data,
		lister:       lister,
		evaluator:    evaluator,
		candidates:   candidates,
		logger:       log.Named("scanner"),
		metrics:      recorder,
		progress:     nil,
		universe:     nil,
		now:          time.Now,
	}, nil
}

// OnProgress registers a progress callback.
func (s *Scanner) OnProgress(fn ProgressFunc) {
	s.progress = fn
}

// LookbackBars is the series length requested per symbol.
func (s *Scanner) LookbackBars() int {
	return s.lookbackBars
}

// Run repeats ScanOnce every interval until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("Scanner started",
		zap.String("timeframe", s.config.Timeframe),
		zap.Int("lookback_bars", s.LookbackBars()),
		zap.Duration("interval", s.config.Interval),
	)

	for {
		wait := s.config.Interval

		_, err := s.ScanOnce(ctx)
		if ctx.Err() != nil {
			s.logger.Info("Scanner stopped")

			return nil
		}

		if err != nil {
			s.logger.Error("Scan pass failed", zap.Error(err))

			if len(s.universe) == 0 {
				wait = min(wait, universeRetryDelay)
			}
		}

		if err := utils.Sleep(ctx, wait); err != nil {
			s.logger.Info("Scanner stopped")

			return nil
		}
	}
}

// ScanOnce runs one pass over the universe and publishes the profitable symbols.
// A pass interrupted by ctx is discarded.
func (s *Scanner) ScanOnce(ctx context.Context) (types.ScanReport, error) {
	report := types.ScanReport{
		Generation: 0,
		Started:    s.now(),
		Finished:   time.Time{},
		Universe:   0,
		Records:    nil,
		Candidates: nil,
	}

	universe, err := s.ResolveUniverse(ctx)
	if err != nil {
		return report, err
	}

	report.Universe = len(universe)
	report.Records = make([]types.ScanRecord, 0, len(universe))
	report.Candidates = make([]string, 0)

	for i, symbol := range universe {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(errors.ErrCodeCanceled, "scan pass interrupted", err)
		}

		record := s.scanSymbol(ctx, symbol)
		if ctx.Err() != nil {
			return report, errors.Wrap(errors.ErrCodeCanceled, "scan pass interrupted", ctx.Err())
		}

		report.Records = append(report.Records, record)
		if record.Profitable {
			report.Candidates = append(report.Candidates, symbol)
		}

		if s.progress != nil {
			s.progress(i+1, len(universe), symbol)
		}
	}

	snapshot := s.candidates.Publish(report.Candidates)
	report.Generation = snapshot.Generation
	report.Finished = s.now()

	s.metrics.ScanPass()
	s.metrics.Candidates(snapshot.Len())

	s.logger.Info("Scan pass completed",
		zap.Uint64("generation", snapshot.Generation),
		zap.Int("universe", report.Universe),
		zap.Int("failed", report.Failed()),
		zap.Strings("candidates", snapshot.Symbols()),
		zap.Duration("elapsed", report.Finished.Sub(report.Started)),
	)

	return report, nil
}

// ResolveUniverse returns the symbols to scan. When the exchange listing fails the
// previously resolved universe is reused.
func (s *Scanner) ResolveUniverse(ctx context.Context) ([]string, error) {
	if s.config.UniverseSource == UniverseStatic {
		s.universe = slices.Clone(s.config.Symbols)

		return s.universe, nil
	}

	listCtx, cancel := s.requestContext(ctx)
	defer cancel()

	symbols, err := s.lister.ListSymbols(listCtx, s.config.QuoteAsset)
	if err == nil && len(symbols) == 0 {
		err = errors.Newf(errors.ErrCodeNoDataFound, "no %s symbols listed", s.config.QuoteAsset)
	}

	if err != nil {
		if len(s.universe) == 0 {
			return nil, errors.Wrap(errors.ErrCodeExchangeRequestFailed, "failed to resolve symbol universe", err)
		}

		s.logger.Warn("Failed to refresh symbol universe, reusing previous",
			zap.Int("symbols", len(s.universe)),
			zap.Error(err),
		)

		return s.universe, nil
	}

	s.universe = symbols

	return s.universe, nil
}

func (s *Scanner) scanSymbol(ctx context.Context, symbol string) types.ScanRecord {
	started := s.now()
	record := types.ScanRecord{
		Symbol:     symbol,
		Result:     types.BacktestResult{Symbol: symbol},
		Err:        nil,
		Error:      "",
		Profitable: false,
		Duration:   0,
	}

	result, err := s.backtest(ctx, symbol)
	record.Duration = s.now().Sub(started)

	if err != nil {
		record.Err = err
		record.Error = err.Error()

		s.metrics.ScanSymbol(metrics.ScanFailed)
		s.logger.Warn("Symbol scan failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return record
	}

	record.Result = result
	record.Profitable = result.ReturnPercent > s.config.ProfitThresholdPercent

	outcome := metrics.ScanUnprofitable
	if record.Profitable {
		outcome = metrics.ScanProfitable
	}

	s.metrics.ScanSymbol(outcome)
	s.logger.Info("Symbol scanned",
		zap.String("symbol", symbol),
		zap.Bool("profitable", record.Profitable),
		zap.Int("bars", result.Bars),
		zap.Float64("return_percent", result.ReturnPercent),
		zap.Float64("win_rate_percent", result.WinRatePercent),
		zap.Int("trades", result.Trades),
		zap.Float64("equity_start", result.EquityStart),
		zap.Float64("equity_final", result.EquityFinal),
		zap.Float64("equity_peak", result.EquityPeak),
		zap.Float64("max_drawdown_percent", result.MaxDrawdown),
		zap.Float64("profit_factor", result.ProfitFactor),
		zap.Float64("expectancy_percent", result.ExpectancyPercent),
		zap.Float64("sqn", result.SQN),
		zap.Duration("elapsed", record.Duration),
	)

	return record
}

func (s *Scanner) backtest(ctx context.Context, symbol string) (types.BacktestResult, error) {
	fetchCtx, cancel := s.requestContext(ctx)
	defer cancel()

	series, err := s.data.GetSeries(fetchCtx, symbol, s.config.Timeframe, s.lookbackBars)
	if err != nil {
		return types.BacktestResult{}, err
	}

	result, err := s.evaluator.Backtest(series)
	if err != nil {
		return types.BacktestResult{}, err
	}

	result.Symbol = symbol

	return result, nil
}

func (s *Scanner) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.config.RequestTimeout)
}
