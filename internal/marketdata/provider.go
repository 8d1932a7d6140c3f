// Package marketdata fetches historical price bars for the scanner and the live signal.
package marketdata

import (
	"context"
	"sort"
	"strings"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderBinance ProviderType = "binance"
	ProviderPolygon ProviderType = "polygon"
)

// Provider returns the most recent bars of a symbol.
type Provider interface {
	// GetSeries returns up to lookback bars ending at the latest closed or forming bar,
	// ascending by time without duplicate timestamps.
	GetSeries(ctx context.Context, symbol string, timeframe string, lookback int) ([]types.MarketData, error)
}

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderBinance: {
		Name:         string(ProviderBinance),
		DisplayName:  "Binance USD-M Futures",
		Description:  "Perpetual futures klines, no credentials required",
		RequiresAuth: false,
	},
	ProviderPolygon: {
		Name:         string(ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "Aggregate bars for crypto tickers such as X:BTCUSD",
		RequiresAuth: true,
	},
}

// GetSupportedProviders returns a sorted list of all supported provider names.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s (supported: %s)",
			providerName, strings.Join(GetSupportedProviders(), ", "))
	}

	return info, nil
}

// Options carries the credentials a provider may need.
type Options struct {
	PolygonAPIKey string
	// BaseURL overrides the Binance futures endpoint, mainly for the testnet.
	BaseURL string
}

// NewProvider creates a market data provider based on the provider type.
func NewProvider(providerName string, opts Options) (Provider, error) {
	switch ProviderType(providerName) {
	case ProviderBinance:
		return NewBinanceProvider(opts.BaseURL), nil
	case ProviderPolygon:
		return NewPolygonProvider(opts.PolygonAPIKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s (supported: %s)",
			providerName, strings.Join(GetSupportedProviders(), ", "))
	}
}

func validateRequest(symbol string, timeframe string, lookback int) (Timeframe, error) {
	if symbol == "" {
		return "", errors.New(errors.ErrCodeInvalidParameter, "symbol is required")
	}

	if lookback <= 0 {
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "lookback must be positive, got %d", lookback)
	}

	return ParseTimeframe(timeframe)
}

// tail keeps the last n bars.
func tail(series []types.MarketData, n int) []types.MarketData {
	if len(series) <= n {
		return series
	}

	return series[len(series)-n:]
}
