package scanner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rxtech-lab/trendscout/internal/candidate"
	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/metrics"
	"github.com/rxtech-lab/trendscout/internal/strategy"
	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/mocks"
	tserrors "github.com/rxtech-lab/trendscout/pkg/errors"
)

type ScannerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	data       *mocks.MockProvider
	lister     *mocks.MockGateway
	evaluator  *mocks.MockEvaluator
	candidates *candidate.Set
	registry   *prometheus.Registry
	recorder   *metrics.Recorder
}

func TestScannerSuite(t *testing.T) {
	suite.Run(t, new(ScannerTestSuite))
}

func (suite *ScannerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.data = mocks.NewMockProvider(suite.ctrl)
	suite.lister = mocks.NewMockGateway(suite.ctrl)
	suite.evaluator = mocks.NewMockEvaluator(suite.ctrl)
	suite.candidates = candidate.NewSet()
	suite.registry = prometheus.NewRegistry()

	recorder, err := metrics.NewRecorder(suite.registry)
	suite.Require().NoError(err)

	suite.recorder = recorder
}

func (suite *ScannerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func staticConfig(symbols ...string) Config {
	return Config{
		Timeframe:              "5m",
		LookbackDays:           30,
		ProfitThresholdPercent: 1,
		Interval:               time.Hour,
		RequestTimeout:         time.Second,
		UniverseSource:         UniverseStatic,
		QuoteAsset:             "",
		Symbols:                symbols,
	}
}

func exchangeConfig() Config {
	config := staticConfig()
	config.UniverseSource = UniverseExchange
	config.QuoteAsset = "USDT"

	return config
}

func (suite *ScannerTestSuite) newScanner(config Config) *Scanner {
	scanner, err := New(config, suite.data, suite.lister, suite.evaluator, suite.candidates, logger.NewNop(), suite.recorder)
	suite.Require().NoError(err)

	return scanner
}

func seriesOf(symbol string) []types.MarketData {
	return []types.MarketData{{Symbol: symbol, Time: time.Unix(0, 0), Open: 1, High: 1, Low: 1, Close: 1, Volume: 1}}
}

// expectBacktest makes every fetch return a one-bar series tagged with the symbol and
// every backtest return the configured return for that symbol.
func (suite *ScannerTestSuite) expectBacktest(returns map[string]float64) {
	suite.data.EXPECT().GetSeries(gomock.Any(), gomock.Any(), "5m", 8640).
		DoAndReturn(func(_ context.Context, symbol, _ string, _ int) ([]types.MarketData, error) {
			return seriesOf(symbol), nil
		}).AnyTimes()
	suite.evaluator.EXPECT().Backtest(gomock.Any()).
		DoAndReturn(func(series []types.MarketData) (types.BacktestResult, error) {
			return types.BacktestResult{ReturnPercent: returns[series[0].Symbol], Bars: len(series)}, nil
		}).AnyTimes()
}

func (suite *ScannerTestSuite) TestNew_Validation() {
	_, err := New(Config{Timeframe: "7m", LookbackDays: 1, UniverseSource: UniverseStatic, Symbols: []string{"A"}}, suite.data, nil, suite.evaluator, suite.candidates, logger.NewNop(), nil)
	suite.True(tserrors.HasCode(err, tserrors.ErrCodeInvalidTimeframe))

	_, err = New(Config{Timeframe: "5m", LookbackDays: 0, UniverseSource: UniverseStatic, Symbols: []string{"A"}}, suite.data, nil, suite.evaluator, suite.candidates, logger.NewNop(), nil)
	suite.True(tserrors.HasCode(err, tserrors.ErrCodeInvalidParameter))

	_, err = New(Config{Timeframe: "5m", LookbackDays: 1, UniverseSource: UniverseStatic}, suite.data, nil, suite.evaluator, suite.candidates, logger.NewNop(), nil)
	suite.True(tserrors.HasCode(err, tserrors.ErrCodeInvalidConfiguration))

	_, err = New(Config{Timeframe: "5m", LookbackDays: 1, UniverseSource: UniverseExchange, QuoteAsset: "USDT"}, suite.data, nil, suite.evaluator, suite.candidates, logger.NewNop(), nil)
	suite.True(tserrors.HasCode(err, tserrors.ErrCodeInvalidConfiguration))

	_, err = New(Config{Timeframe: "5m", LookbackDays: 1, UniverseSource: "file"}, suite.data, nil, suite.evaluator, suite.candidates, logger.NewNop(), nil)
	suite.True(tserrors.HasCode(err, tserrors.ErrCodeInvalidConfiguration))
}

func (suite *ScannerTestSuite) TestLookbackBarsFromDays() {
	scanner := suite.newScanner(staticConfig("SYM_A"))

	suite.Equal(30*24*12, scanner.LookbackBars())
}

func (suite *ScannerTestSuite) TestThresholdSelectsProfitableSymbols() {
	suite.expectBacktest(map[string]float64{"SYM_A": 2.1, "SYM_B": 0.4})

	scanner := suite.newScanner(staticConfig("SYM_A", "SYM_B"))

	report, err := scanner.ScanOnce(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"SYM_A"}, report.Candidates)
	suite.Equal(uint64(1), report.Generation)
	suite.Equal(2, report.Universe)
	suite.Len(report.Records, 2)
	suite.True(report.Records[0].Profitable)
	suite.Equal("SYM_A", report.Records[0].Result.Symbol)
	suite.False(report.Records[1].Profitable)

	snapshot := suite.candidates.Snapshot()
	suite.Equal([]string{"SYM_A"}, snapshot.Symbols())
	suite.Equal(uint64(1), snapshot.Generation)

	expected := `
# HELP trendscout_scan_passes_total Completed scanner passes.
# TYPE trendscout_scan_passes_total counter
trendscout_scan_passes_total 1
`
	suite.NoError(testutil.GatherAndCompare(suite.registry, strings.NewReader(expected), "trendscout_scan_passes_total"))
}

func (suite *ScannerTestSuite) TestThresholdIsExclusive() {
	suite.expectBacktest(map[string]float64{"SYM_A": 1.0})

	scanner := suite.newScanner(staticConfig("SYM_A"))

	report, err := scanner.ScanOnce(context.Background())
	suite.Require().NoError(err)
	suite.Empty(report.Candidates)
	suite.True(suite.candidates.Snapshot().IsEmpty())
}

func (suite *ScannerTestSuite) TestSymbolFailureIsNotProfitable() {
	suite.data.EXPECT().GetSeries(gomock.Any(), "SYM_A", "5m", 8640).Return(seriesOf("SYM_A"), nil)
	suite.data.EXPECT().GetSeries(gomock.Any(), "SYM_B", "5m", 8640).Return(nil, errors.New("connection reset"))
	suite.data.EXPECT().GetSeries(gomock.Any(), "SYM_C", "5m", 8640).Return(seriesOf("SYM_C"), nil)
	suite.evaluator.EXPECT().Backtest(gomock.Any()).
		DoAndReturn(func(series []types.MarketData) (types.BacktestResult, error) {
			if series[0].Symbol == "SYM_C" {
				return types.BacktestResult{}, tserrors.NewInsufficientDataErrorf(15, 1, "SYM_C", "not enough bars")
			}

			return types.BacktestResult{ReturnPercent: 5}, nil
		}).Times(2)

	scanner := suite.newScanner(staticConfig("SYM_A", "SYM_B", "SYM_C"))

	report, err := scanner.ScanOnce(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"SYM_A"}, report.Candidates)
	suite.Equal(2, report.Failed())
	suite.Contains(report.Records[1].Error, "connection reset")
	suite.True(tserrors.IsInsufficientDataError(report.Records[2].Err))
}

func (suite *ScannerTestSuite) TestExchangeUniverseIsReusedOnFailure() {
	suite.expectBacktest(map[string]float64{"BTCUSDT": 3, "ETHUSDT": 0})

	gomock.InOrder(
		suite.lister.EXPECT().ListSymbols(gomock.Any(), "USDT").Return([]string{"BTCUSDT", "ETHUSDT"}, nil),
		suite.lister.EXPECT().ListSymbols(gomock.Any(), "USDT").Return(nil, errors.New("exchange down")),
	)

	scanner := suite.newScanner(exchangeConfig())

	_, err := scanner.ScanOnce(context.Background())
	suite.Require().NoError(err)

	report, err := scanner.ScanOnce(context.Background())
	suite.Require().NoError(err)
	suite.Equal(2, report.Universe)
	suite.Equal([]string{"BTCUSDT"}, report.Candidates)
	suite.Equal(uint64(2), report.Generation)
}

func (suite *ScannerTestSuite) TestUniverseFailureWithoutPreviousPublishesNothing() {
	suite.lister.EXPECT().ListSymbols(gomock.Any(), "USDT").Return(nil, errors.New("exchange down"))

	scanner := suite.newScanner(exchangeConfig())

	_, err := scanner.ScanOnce(context.Background())
	suite.True(tserrors.HasCode(err, tserrors.ErrCodeExchangeRequestFailed))
	suite.Equal(uint64(0), suite.candidates.Snapshot().Generation)
}

func (suite *ScannerTestSuite) TestEmptyListingCountsAsFailure() {
	suite.lister.EXPECT().ListSymbols(gomock.Any(), "USDT").Return([]string{}, nil)

	scanner := suite.newScanner(exchangeConfig())

	_, err := scanner.ScanOnce(context.Background())
	suite.Error(err)
}

func (suite *ScannerTestSuite) TestCancelledPassIsDiscarded() {
	suite.candidates.Publish([]string{"OLD"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	suite.data.EXPECT().GetSeries(gomock.Any(), "SYM_A", "5m", 8640).
		DoAndReturn(func(_ context.Context, symbol, _ string, _ int) ([]types.MarketData, error) {
			cancel()

			return seriesOf(symbol), nil
		})
	suite.evaluator.EXPECT().Backtest(gomock.Any()).Return(types.BacktestResult{ReturnPercent: 9}, nil)

	scanner := suite.newScanner(staticConfig("SYM_A", "SYM_B"))

	_, err := scanner.ScanOnce(ctx)
	suite.True(tserrors.HasCode(err, tserrors.ErrCodeCanceled))
	suite.Equal([]string{"OLD"}, suite.candidates.Snapshot().Symbols())
	suite.Equal(uint64(1), suite.candidates.Snapshot().Generation)
}

func (suite *ScannerTestSuite) TestProgressCallback() {
	suite.expectBacktest(map[string]float64{})

	scanner := suite.newScanner(staticConfig("SYM_A", "SYM_B", "SYM_C"))

	var calls []string

	scanner.OnProgress(func(done, total int, symbol string) {
		suite.Equal(3, total)
		suite.Equal(len(calls)+1, done)

		calls = append(calls, symbol)
	})

	_, err := scanner.ScanOnce(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"SYM_A", "SYM_B", "SYM_C"}, calls)
}

func (suite *ScannerTestSuite) TestRunStopsOnCancel() {
	suite.expectBacktest(map[string]float64{"SYM_A": 2})

	scanner := suite.newScanner(staticConfig("SYM_A"))

	ctx, cancel := context.WithCancel(context.Background())
	scanner.OnProgress(func(_, _ int, _ string) {})

	done := make(chan error, 1)

	go func() {
		done <- scanner.Run(ctx)
	}()

	suite.Eventually(func() bool {
		return suite.candidates.Snapshot().Generation == 1
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		suite.NoError(err)
	case <-time.After(time.Second):
		suite.Fail("scanner did not stop")
	}

	suite.Equal(uint64(1), suite.candidates.Snapshot().Generation)
}

func (suite *ScannerTestSuite) TestScanWithTrendFollowing() {
	evaluator, err := strategy.NewTrendFollowing(strategy.DefaultParams())
	suite.Require().NoError(err)

	suite.data.EXPECT().GetSeries(gomock.Any(), gomock.Any(), "5m", 8640).
		DoAndReturn(func(_ context.Context, symbol, _ string, bars int) ([]types.MarketData, error) {
			return mocks.Series(symbol, bars), nil
		}).Times(2)

	scanner, err := New(staticConfig("BTCUSDT", "ETHUSDT"), suite.data, nil, evaluator, suite.candidates, logger.NewNop(), nil)
	suite.Require().NoError(err)

	report, err := scanner.ScanOnce(context.Background())
	suite.Require().NoError(err)
	suite.Equal(0, report.Failed())

	for _, record := range report.Records {
		suite.Equal(8640, record.Result.Bars)
		suite.Equal(record.Result.ReturnPercent > 1, record.Profitable)
	}
}
