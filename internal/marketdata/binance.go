package marketdata

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// binanceMaxKlines is the page size limit of the futures klines endpoint.
const binanceMaxKlines = 1500

// BinanceKlinesService abstracts the futures klines request builder for testing.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	Limit(limit int) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Do(ctx context.Context) ([]*futures.Kline, error)
}

// BinanceAPIClient abstracts the futures client for testing.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

// BinanceProvider reads USD-M futures klines.
type BinanceProvider struct {
	apiClient BinanceAPIClient
	now       func() time.Time
}

// NewBinanceProvider creates a provider on the public futures endpoint, or baseURL when set.
func NewBinanceProvider(baseURL string) *BinanceProvider {
	client := futures.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}

	return NewBinanceProviderWithAPI(&realBinanceAPIClient{client: client})
}

// NewBinanceProviderWithAPI creates a provider on an injected API client.
func NewBinanceProviderWithAPI(apiClient BinanceAPIClient) *BinanceProvider {
	return &BinanceProvider{
		apiClient: apiClient,
		now:       time.Now,
	}
}

// GetSeries pages backwards from now until lookback bars are collected or history runs out.
func (p *BinanceProvider) GetSeries(ctx context.Context, symbol string, timeframe string, lookback int) ([]types.MarketData, error) {
	tf, err := validateRequest(symbol, timeframe, lookback)
	if err != nil {
		return nil, err
	}

	var pages [][]types.MarketData

	collected := 0
	endTime := p.now().UnixMilli()

	for collected < lookback {
		limit := min(lookback-collected, binanceMaxKlines)

		klines, err := p.apiClient.NewKlinesService().
			Symbol(symbol).
			Interval(string(tf)).
			Limit(limit).
			EndTime(endTime).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s klines for %s", tf, symbol)
		}

		if len(klines) == 0 {
			break
		}

		page, err := convertKlines(symbol, klines)
		if err != nil {
			return nil, err
		}

		pages = append(pages, page)
		collected += len(page)

		// the endpoint returns the latest bars before endTime, continue before the oldest one
		endTime = klines[0].OpenTime - 1

		if len(klines) < limit {
			break
		}
	}

	series := make([]types.MarketData, 0, collected)
	for i := len(pages) - 1; i >= 0; i-- {
		series = append(series, pages[i]...)
	}

	series = types.NormalizeSeries(series)
	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no %s klines returned for %s", tf, symbol)
	}

	return tail(series, lookback), nil
}

// convertKlines converts Binance kline data to our internal MarketData format.
func convertKlines(symbol string, klines []*futures.Kline) ([]types.MarketData, error) {
	out := make([]types.MarketData, 0, len(klines))

	for _, k := range klines {
		values, err := parseFloats(k.Open, k.High, k.Low, k.Close, k.Volume)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid kline for %s at %d", symbol, k.OpenTime)
		}

		out = append(out, types.MarketData{
			Symbol: symbol,
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	return out, nil
}

func parseFloats(raw ...string) ([]float64, error) {
	out := make([]float64, len(raw))

	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

type realBinanceAPIClient struct {
	client *futures.Client
}

func (c *realBinanceAPIClient) NewKlinesService() BinanceKlinesService {
	return &realBinanceKlinesService{service: c.client.NewKlinesService()}
}

type realBinanceKlinesService struct {
	service *futures.KlinesService
}

func (s *realBinanceKlinesService) Symbol(symbol string) BinanceKlinesService {
	s.service.Symbol(symbol)

	return s
}

func (s *realBinanceKlinesService) Interval(interval string) BinanceKlinesService {
	s.service.Interval(interval)

	return s
}

func (s *realBinanceKlinesService) Limit(limit int) BinanceKlinesService {
	s.service.Limit(limit)

	return s
}

func (s *realBinanceKlinesService) EndTime(endTime int64) BinanceKlinesService {
	s.service.EndTime(endTime)

	return s
}

func (s *realBinanceKlinesService) Do(ctx context.Context) ([]*futures.Kline, error) {
	return s.service.Do(ctx)
}
