package marketdata

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// mockBinanceAPIClient implements BinanceAPIClient for testing.
type mockBinanceAPIClient struct {
	klinesPerCall [][]*futures.Kline
	errorsPerCall []error
	requests      []mockKlinesRequest
}

type mockKlinesRequest struct {
	symbol   string
	interval string
	limit    int
	endTime  int64
}

func (m *mockBinanceAPIClient) NewKlinesService() BinanceKlinesService {
	return &mockBinanceKlinesService{client: m}
}

type mockBinanceKlinesService struct {
	client  *mockBinanceAPIClient
	request mockKlinesRequest
}

func (m *mockBinanceKlinesService) Symbol(symbol string) BinanceKlinesService {
	m.request.symbol = symbol
	return m
}

func (m *mockBinanceKlinesService) Interval(interval string) BinanceKlinesService {
	m.request.interval = interval
	return m
}

func (m *mockBinanceKlinesService) Limit(limit int) BinanceKlinesService {
	m.request.limit = limit
	return m
}

func (m *mockBinanceKlinesService) EndTime(endTime int64) BinanceKlinesService {
	m.request.endTime = endTime
	return m
}

func (m *mockBinanceKlinesService) Do(_ context.Context) ([]*futures.Kline, error) {
	idx := len(m.client.requests)
	m.client.requests = append(m.client.requests, m.request)

	var err error
	if idx < len(m.client.errorsPerCall) {
		err = m.client.errorsPerCall[idx]
	}

	if idx < len(m.client.klinesPerCall) {
		return m.client.klinesPerCall[idx], err
	}

	return nil, err
}

// makeKlines returns count five-minute klines, the last one opening at lastOpen.
func makeKlines(lastOpen time.Time, count int) []*futures.Kline {
	klines := make([]*futures.Kline, count)
	for i := 0; i < count; i++ {
		open := lastOpen.Add(-time.Duration(count-1-i) * 5 * time.Minute)
		price := fmt.Sprintf("%d.5", 100+i)
		klines[i] = &futures.Kline{
			OpenTime:  open.UnixMilli(),
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			Volume:    "10",
			CloseTime: open.Add(5*time.Minute).UnixMilli() - 1,
		}
	}

	return klines
}

type BinanceProviderTestSuite struct {
	suite.Suite
	now time.Time
}

func TestBinanceProviderSuite(t *testing.T) {
	suite.Run(t, new(BinanceProviderTestSuite))
}

func (suite *BinanceProviderTestSuite) SetupTest() {
	suite.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *BinanceProviderTestSuite) provider(api *mockBinanceAPIClient) *BinanceProvider {
	provider := NewBinanceProviderWithAPI(api)
	provider.now = func() time.Time { return suite.now }

	return provider
}

func (suite *BinanceProviderTestSuite) TestNewBinanceProvider() {
	provider := NewBinanceProvider("")
	suite.NotNil(provider)
	suite.NotNil(provider.apiClient)
}

func (suite *BinanceProviderTestSuite) TestSinglePage() {
	lastOpen := suite.now.Add(-5 * time.Minute)
	api := &mockBinanceAPIClient{klinesPerCall: [][]*futures.Kline{makeKlines(lastOpen, 500)}}

	series, err := suite.provider(api).GetSeries(context.Background(), "BTCUSDT", "5m", 500)
	suite.Require().NoError(err)

	suite.Len(series, 500)
	suite.Require().Len(api.requests, 1)
	suite.Equal("BTCUSDT", api.requests[0].symbol)
	suite.Equal("5m", api.requests[0].interval)
	suite.Equal(500, api.requests[0].limit)
	suite.Equal(suite.now.UnixMilli(), api.requests[0].endTime)
	suite.Equal(lastOpen, series[len(series)-1].Time)
	suite.Equal(100.5, series[0].Close)
	suite.Equal("BTCUSDT", series[0].Symbol)
}

func (suite *BinanceProviderTestSuite) TestPaginatesBackwards() {
	newestOpen := suite.now.Add(-5 * time.Minute)
	newest := makeKlines(newestOpen, 1500)
	olderOpen := time.UnixMilli(newest[0].OpenTime).Add(-5 * time.Minute)
	older := makeKlines(olderOpen, 500)

	api := &mockBinanceAPIClient{klinesPerCall: [][]*futures.Kline{newest, older}}

	series, err := suite.provider(api).GetSeries(context.Background(), "ETHUSDT", "5m", 2000)
	suite.Require().NoError(err)

	suite.Require().Len(api.requests, 2)
	suite.Equal(1500, api.requests[0].limit)
	suite.Equal(500, api.requests[1].limit)
	suite.Equal(newest[0].OpenTime-1, api.requests[1].endTime)

	suite.Len(series, 2000)
	for i := 1; i < len(series); i++ {
		suite.True(series[i].Time.After(series[i-1].Time), "bar %d not ascending", i)
	}

	suite.Equal(time.UnixMilli(older[0].OpenTime).UTC(), series[0].Time)
	suite.Equal(newestOpen, series[len(series)-1].Time)
}

func (suite *BinanceProviderTestSuite) TestStopsWhenHistoryRunsOut() {
	api := &mockBinanceAPIClient{klinesPerCall: [][]*futures.Kline{makeKlines(suite.now, 40)}}

	series, err := suite.provider(api).GetSeries(context.Background(), "NEWUSDT", "5m", 100)
	suite.Require().NoError(err)

	suite.Len(series, 40)
	suite.Len(api.requests, 1)
}

func (suite *BinanceProviderTestSuite) TestFetchError() {
	api := &mockBinanceAPIClient{errorsPerCall: []error{fmt.Errorf("connection reset")}}

	series, err := suite.provider(api).GetSeries(context.Background(), "BTCUSDT", "5m", 10)
	suite.Nil(series)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "connection reset")
}

func (suite *BinanceProviderTestSuite) TestParseError() {
	klines := makeKlines(suite.now, 3)
	klines[1].Close = "not-a-number"
	api := &mockBinanceAPIClient{klinesPerCall: [][]*futures.Kline{klines}}

	_, err := suite.provider(api).GetSeries(context.Background(), "BTCUSDT", "5m", 3)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *BinanceProviderTestSuite) TestNoData() {
	api := &mockBinanceAPIClient{}

	_, err := suite.provider(api).GetSeries(context.Background(), "BTCUSDT", "5m", 10)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *BinanceProviderTestSuite) TestInvalidRequest() {
	api := &mockBinanceAPIClient{}
	provider := suite.provider(api)

	_, err := provider.GetSeries(context.Background(), "BTCUSDT", "7m", 10)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTimeframe))

	_, err = provider.GetSeries(context.Background(), "", "5m", 10)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = provider.GetSeries(context.Background(), "BTCUSDT", "5m", 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	suite.Empty(api.requests)
}
