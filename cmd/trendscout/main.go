package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/trendscout/internal/app"
	"github.com/rxtech-lab/trendscout/internal/candidate"
	"github.com/rxtech-lab/trendscout/internal/config"
	"github.com/rxtech-lab/trendscout/internal/indicator"
	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/scanner"
	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/internal/version"
)

// setup loads the configuration and builds the process logger.
func setup(cmd *cli.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}

	appLogger, err := logger.NewLoggerWithOptions(logger.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, nil, err
	}

	return cfg, appLogger, nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, appLogger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	application, err := app.New(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	return application.Run(ctx)
}

func scanAction(ctx context.Context, cmd *cli.Command) error {
	cfg, appLogger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	if symbols := cmd.StringSlice("symbols"); len(symbols) > 0 {
		cfg.Universe.Source = scanner.UniverseStatic
		cfg.Universe.Symbols = symbols
	}

	data, err := app.NewDataProvider(cfg)
	if err != nil {
		return err
	}

	evaluator, err := app.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	var lister scanner.SymbolLister
	if cfg.Universe.Source == scanner.UniverseExchange {
		gateway, err := app.NewGateway(cfg)
		if err != nil {
			return err
		}

		lister = gateway
	}

	scan, err := app.NewScanner(cfg, data, lister, evaluator, candidate.NewSet(), appLogger, nil)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar

	scan.OnProgress(func(done, total int, symbol string) {
		if bar == nil {
			bar = progressbar.NewOptions(total, progressbar.OptionSetDescription("Scanning"), progressbar.OptionShowCount())
		}

		bar.Describe(symbol)
		_ = bar.Set(done)
	})

	fmt.Printf("Backtesting %d bars of %s per symbol\n", scan.LookbackBars(), cfg.Scanner.Timeframe)

	report, err := scan.ScanOnce(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nScanned %d symbols, %d failed\n", report.Universe, report.Failed())
	for _, record := range report.Records {
		if record.Err != nil {
			fmt.Printf("  %-16s error: %v\n", record.Symbol, record.Err)

			continue
		}

		fmt.Printf("  %-16s return %8.2f%%  trades %4d  profitable %t\n",
			record.Symbol, record.Result.ReturnPercent, record.Result.Trades, record.Profitable)
	}

	fmt.Printf("Candidates: %v\n", report.Candidates)

	if output := cmd.String("output"); output != "" {
		if err := types.WriteScanReport(output, report); err != nil {
			return err
		}

		fmt.Printf("Report written to %s\n", output)
	}

	return nil
}

func signalAction(ctx context.Context, cmd *cli.Command) error {
	cfg, appLogger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	data, err := app.NewDataProvider(cfg)
	if err != nil {
		return err
	}

	evaluator, err := app.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	periods := indicator.DefaultPeriods(cfg.Strategy.EMAPeriod, cfg.Strategy.RSIPeriod)

	for _, symbol := range cmd.StringSlice("symbols") {
		series, err := data.GetSeries(ctx, symbol, cfg.Trading.Timeframe, cfg.Trading.SeriesLimit)
		if err != nil {
			fmt.Printf("%-16s error: %v\n", symbol, err)

			continue
		}

		decision, err := evaluator.Signal(series)
		if err != nil {
			fmt.Printf("%-16s error: %v\n", symbol, err)

			continue
		}

		snapshot := indicator.TakeSnapshot(series, periods)
		fmt.Printf("%-16s %-4s close %.6g  ema %.6g  rsi %.2f  macd %.4g  atr %.4g\n",
			symbol, decision, snapshot.Close, snapshot.EMA, snapshot.RSI, snapshot.MACD, snapshot.ATR)
	}

	return nil
}

func pnlAction(ctx context.Context, cmd *cli.Command) error {
	cfg, appLogger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	limit, err := strconv.Atoi(cmd.String("limit"))
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", cmd.String("limit"), err)
	}

	gateway, err := app.NewGateway(cfg)
	if err != nil {
		return err
	}

	pnl, err := gateway.GetRealizedPnL(ctx, limit)
	if err != nil {
		return err
	}

	balance, err := gateway.GetBalance(ctx, cfg.Universe.QuoteAsset)
	if err != nil {
		return err
	}

	fmt.Printf("Realized PnL (last %d entries): %.4f %s\n", limit, pnl, cfg.Universe.QuoteAsset)
	fmt.Printf("Available balance: %.4f %s\n", balance, cfg.Universe.QuoteAsset)

	return nil
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func initAction(_ context.Context, cmd *cli.Command) error {
	out, err := config.DefaultYAML()
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		fmt.Print(string(out))

		return nil
	}

	if _, err := os.Stat(output); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", output)
	}

	return os.WriteFile(output, out, 0o600)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "trendscout",
		Version: version.GetVersion(),
		Usage:   "Backtest-driven symbol scanner and bracket order trader for USD-M futures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file, TRENDSCOUT_* environment variables override it",
				Sources: cli.EnvVars("TRENDSCOUT_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the scanner and the trading loop until interrupted",
				Action: runAction,
			},
			{
				Name:  "scan",
				Usage: "Run one scanner pass and print the candidates",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "symbols",
						Aliases: []string{"s"},
						Usage:   "Scan these symbols instead of the configured universe",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the scan report as YAML to this path",
					},
				},
				Action: scanAction,
			},
			{
				Name:  "signal",
				Usage: "Print the live signal and indicator values of symbols",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "symbols",
						Aliases:  []string{"s"},
						Usage:    "Symbols to evaluate",
						Required: true,
					},
				},
				Action: signalAction,
			},
			{
				Name:  "pnl",
				Usage: "Print realized PnL and available balance of the futures account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "limit",
						Usage: "Number of income history entries to sum",
						Value: "1000",
					},
				},
				Action: pnlAction,
			},
			{
				Name:  "config",
				Usage: "Inspect the configuration format",
				Commands: []*cli.Command{
					{
						Name:   "schema",
						Usage:  "Print the JSON schema of the config file",
						Action: schemaAction,
					},
					{
						Name:  "init",
						Usage: "Write a config file with the default values",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "output",
								Aliases: []string{"o"},
								Usage:   "Destination path, stdout when empty",
							},
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing file",
							},
						},
						Action: initAction,
					},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}
