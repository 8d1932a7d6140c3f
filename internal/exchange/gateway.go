// Package exchange is the order and account gateway of the trading loop.
package exchange

import (
	"context"
	"sort"
	"strings"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// Gateway is everything the scanner and the trading loop need from the exchange.
type Gateway interface {
	// GetBalance returns the available balance of asset.
	GetBalance(ctx context.Context, asset string) (float64, error)
	// GetOpenPositions returns the symbols holding a non-zero position.
	GetOpenPositions(ctx context.Context) ([]string, error)
	// GetOpenOrders returns the symbols with at least one open order, without duplicates.
	GetOpenOrders(ctx context.Context) ([]string, error)
	// CancelOpenOrders cancels every open order of symbol.
	CancelOpenOrders(ctx context.Context, symbol string) error
	// GetPrecision returns the price and quantity decimals accepted for symbol.
	GetPrecision(ctx context.Context, symbol string) (types.SymbolPrecision, error)
	// GetCurrentPrice returns the latest traded price of symbol.
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
	// SetLeverage sets the initial leverage of symbol.
	SetLeverage(ctx context.Context, symbol string, leverage int) error
	// SetMarginMode switches symbol to the given margin mode. Already being in that mode is not an error.
	SetMarginMode(ctx context.Context, symbol string, mode types.MarginMode) error
	// PlaceOrder submits a single order leg.
	PlaceOrder(ctx context.Context, request types.OrderRequest) (types.OrderAck, error)
	// GetOrder looks an order up by its client order id. None means the exchange has no such order.
	GetOrder(ctx context.Context, symbol string, clientOrderID string) (optional.Option[types.OrderAck], error)
	// ListSymbols returns the tradable perpetual symbols quoted in quoteAsset, sorted.
	ListSymbols(ctx context.Context, quoteAsset string) ([]string, error)
	// GetRealizedPnL sums the latest limit realized PnL entries of the income history.
	GetRealizedPnL(ctx context.Context, limit int) (float64, error)
}

type ProviderType string

const (
	ProviderBinancePaper ProviderType = "binance-paper"
	ProviderBinanceLive  ProviderType = "binance-live"
)

type ProviderInfo struct {
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	IsPaperTrading bool   `json:"isPaperTrading"`
}

var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderBinancePaper: {
		Name:           string(ProviderBinancePaper),
		DisplayName:    "Binance Futures Testnet",
		Description:    "USD-M futures testnet for paper trading without real funds",
		IsPaperTrading: true,
	},
	ProviderBinanceLive: {
		Name:           string(ProviderBinanceLive),
		DisplayName:    "Binance Futures",
		Description:    "USD-M perpetual futures with real funds",
		IsPaperTrading: false,
	},
}

// GetSupportedProviders returns the sorted provider names.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific trading provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported trading provider: %s (supported: %s)",
			providerName, strings.Join(GetSupportedProviders(), ", "))
	}

	return info, nil
}

// NewGateway creates a gateway based on the provider type.
func NewGateway(providerName string, config BinanceConfig) (Gateway, error) {
	info, err := GetProviderInfo(providerName)
	if err != nil {
		return nil, err
	}

	gateway, err := NewBinanceGateway(config, info.IsPaperTrading)
	if err != nil {
		return nil, err
	}

	return gateway, nil
}
