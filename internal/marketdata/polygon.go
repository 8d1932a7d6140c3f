package marketdata

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// AggsFetcher drains an aggregates query.
type AggsFetcher func(ctx context.Context, params *models.ListAggsParams) ([]models.Agg, error)

// PolygonProvider reads aggregate bars from polygon.io.
type PolygonProvider struct {
	fetch AggsFetcher
	now   func() time.Time
}

// NewPolygonProvider creates a provider authenticated with apiKey.
func NewPolygonProvider(apiKey string) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon api key is required")
	}

	client := polygon.New(apiKey)

	return NewPolygonProviderWithFetcher(func(ctx context.Context, params *models.ListAggsParams) ([]models.Agg, error) {
		var aggs []models.Agg

		iter := client.ListAggs(ctx, params)
		for iter.Next() {
			aggs = append(aggs, iter.Item())
		}

		if err := iter.Err(); err != nil {
			return nil, err
		}

		return aggs, nil
	}), nil
}

// NewPolygonProviderWithFetcher creates a provider on an injected fetcher.
func NewPolygonProviderWithFetcher(fetch AggsFetcher) *PolygonProvider {
	return &PolygonProvider{
		fetch: fetch,
		now:   time.Now,
	}
}

// GetSeries requests the window of lookback bars ending now.
func (p *PolygonProvider) GetSeries(ctx context.Context, symbol string, timeframe string, lookback int) ([]types.MarketData, error) {
	tf, err := validateRequest(symbol, timeframe, lookback)
	if err != nil {
		return nil, err
	}

	to := p.now()
	from := to.Add(-time.Duration(lookback) * tf.Duration())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: tf.Multiplier(),
		Timespan:   tf.Timespan(),
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.WithLimit(50000)

	aggs, err := p.fetch(ctx, params)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s aggregates for %s", tf, symbol)
	}

	series := make([]types.MarketData, 0, len(aggs))
	for _, agg := range aggs {
		series = append(series, types.MarketData{
			Symbol: symbol,
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	series = types.NormalizeSeries(series)
	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no %s aggregates returned for %s", tf, symbol)
	}

	return tail(series, lookback), nil
}
