// Package app wires the scanner, the trading loop and the metrics endpoint into one process.
package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rxtech-lab/trendscout/internal/candidate"
	"github.com/rxtech-lab/trendscout/internal/config"
	"github.com/rxtech-lab/trendscout/internal/exchange"
	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/marketdata"
	"github.com/rxtech-lab/trendscout/internal/metrics"
	"github.com/rxtech-lab/trendscout/internal/scanner"
	"github.com/rxtech-lab/trendscout/internal/strategy"
	"github.com/rxtech-lab/trendscout/internal/trading"
	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/internal/version"
)

// App owns every long running component of the process.
type App struct {
	config      *config.Config
	logger      *logger.Logger
	registry    *prometheus.Registry
	gateway     exchange.Gateway
	candidates  *candidate.Set
	scanner     *scanner.Scanner
	coordinator *trading.Coordinator
	server      *metrics.Server
}

// New builds the full engine from cfg.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, err
	}

	gateway, err := NewGateway(cfg)
	if err != nil {
		return nil, err
	}

	data, err := NewDataProvider(cfg)
	if err != nil {
		return nil, err
	}

	evaluator, err := NewEvaluator(cfg)
	if err != nil {
		return nil, err
	}

	candidates := candidate.NewSet()

	scan, err := NewScanner(cfg, data, gateway, evaluator, candidates, log, recorder)
	if err != nil {
		return nil, err
	}

	sequencer := trading.NewSequencer(gateway, trading.SequencerConfig{
		Leverage:       cfg.Trading.Leverage,
		MarginMode:     types.MarginMode(cfg.Trading.MarginMode),
		LegDelay:       cfg.Trading.LegDelay,
		RequestTimeout: cfg.Exchange.RequestTimeout,
		Plan: trading.PlanConfig{
			Volume:             cfg.Trading.Volume,
			TakeProfitPercent:  cfg.Trading.TakeProfitPercent,
			StopLossPercent:    cfg.Trading.StopLossPercent,
			EntryOffsetPercent: cfg.Trading.EntryOffsetPercent,
		},
	}, trading.NewLogAlertSink(log, recorder), log, recorder)

	coordinator, err := trading.NewCoordinator(trading.CoordinatorConfig{
		Timeframe:      cfg.Trading.Timeframe,
		SeriesLimit:    cfg.Trading.SeriesLimit,
		PollInterval:   cfg.Trading.PollInterval,
		SymbolPause:    cfg.Trading.SymbolPause,
		RequestTimeout: cfg.Exchange.RequestTimeout,
		Volume:         cfg.Trading.Volume,
		Leverage:       cfg.Trading.Leverage,
		QuoteAsset:     cfg.Universe.QuoteAsset,
		AllowShort:     cfg.Trading.AllowShort,
	}, candidates, candidate.NewCooldown(cfg.Trading.Cooldown), gateway, data, evaluator, sequencer, log, recorder)
	if err != nil {
		return nil, err
	}

	var server *metrics.Server
	if cfg.Metrics.ListenAddr != "" {
		server = metrics.NewServer(cfg.Metrics.ListenAddr, registry, log.Named("metrics"))
	}

	return &App{
		config:      cfg,
		logger:      log,
		registry:    registry,
		gateway:     gateway,
		candidates:  candidates,
		scanner:     scan,
		coordinator: coordinator,
		server:      server,
	}, nil
}

// Run starts the scanner and the trading loop and blocks until ctx is cancelled
// or one of them fails. A failing metrics server is logged only.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting trendscout",
		zap.String("version", version.GetVersion()),
		zap.String("exchange", a.config.Exchange.Provider),
		zap.String("market_data", a.config.MarketData.Provider),
		zap.String("universe", a.config.Universe.Source),
		zap.Bool("metrics", a.server != nil),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.scanner.Run(ctx)
	})

	g.Go(func() error {
		return a.coordinator.Run(ctx)
	})

	// metrics server failures are logged and never stop the loops
	if a.server != nil {
		g.Go(func() error {
			if err := a.server.Run(ctx); err != nil {
				a.logger.Error("Metrics server failed", zap.Error(err))
			}

			return nil
		})
	}

	err := g.Wait()
	a.logger.Info("Trendscout stopped", zap.Error(err))

	return err
}

// Candidates exposes the shared candidate set.
func (a *App) Candidates() *candidate.Set {
	return a.candidates
}

// Registry is the prometheus registry the components report to.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// NewGateway creates the exchange gateway selected by cfg.
func NewGateway(cfg *config.Config) (exchange.Gateway, error) {
	return exchange.NewGateway(cfg.Exchange.Provider, exchange.BinanceConfig{
		APIKey:    cfg.Exchange.APIKey,
		SecretKey: cfg.Exchange.APISecret,
		BaseURL:   cfg.Exchange.BaseURL,
	})
}

// NewDataProvider creates the market data provider selected by cfg.
func NewDataProvider(cfg *config.Config) (marketdata.Provider, error) {
	return marketdata.NewProvider(cfg.MarketData.Provider, marketdata.Options{
		PolygonAPIKey: cfg.MarketData.PolygonAPIKey,
		BaseURL:       cfg.Exchange.BaseURL,
	})
}

// NewEvaluator creates the signal rule with the configured periods, thresholds and
// simulated account.
func NewEvaluator(cfg *config.Config) (*strategy.TrendFollowing, error) {
	return strategy.NewTrendFollowing(strategy.Params{
		EMAPeriod: cfg.Strategy.EMAPeriod,
		RSIPeriod: cfg.Strategy.RSIPeriod,
		Thresholds: strategy.Thresholds{
			BuyRSIBelow:  cfg.Strategy.BuyRSIBelow,
			SellRSIAbove: cfg.Strategy.SellRSIAbove,
		},
		Backtest: strategy.BacktestParams{
			Cash:              cfg.Scanner.Cash,
			Margin:            cfg.Scanner.Margin,
			Commission:        cfg.Scanner.Commission,
			TradeSizePercent:  cfg.Scanner.TradeSizePercent,
			TakeProfitPercent: cfg.Trading.TakeProfitPercent,
			StopLossPercent:   cfg.Trading.StopLossPercent,
			SlippagePercent:   cfg.Trading.SlippagePercent,
		},
	})
}

// NewScanner creates a scanner publishing into candidates. lister is only used for the
// exchange universe and may be nil otherwise.
func NewScanner(
	cfg *config.Config,
	data marketdata.Provider,
	lister scanner.SymbolLister,
	evaluator strategy.Evaluator,
	candidates *candidate.Set,
	log *logger.Logger,
	recorder *metrics.Recorder,
) (*scanner.Scanner, error) {
	return scanner.New(scanner.Config{
		Timeframe:              cfg.Scanner.Timeframe,
		LookbackDays:           cfg.Scanner.LookbackDays,
		ProfitThresholdPercent: cfg.Scanner.ProfitThresholdPercent,
		Interval:               cfg.Scanner.Interval,
		RequestTimeout:         cfg.Exchange.RequestTimeout,
		UniverseSource:         cfg.Universe.Source,
		QuoteAsset:             cfg.Universe.QuoteAsset,
		Symbols:                cfg.Universe.Symbols,
	}, data, lister, evaluator, candidates, log, recorder)
}
