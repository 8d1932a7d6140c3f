package exchange

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/internal/utils"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

const (
	// binanceNoMarginTypeChange is returned when the symbol is already in the requested margin mode.
	binanceNoMarginTypeChange = -4046
	binanceOrderDoesNotExist  = -2013
	binanceIncomeRealizedPnL  = "REALIZED_PNL"
	binanceStatusTrading      = "TRADING"
	binanceContractPerpetual  = "PERPETUAL"
)

// BinanceGateway implements Gateway on the USD-M futures API.
// Symbol precision is read from exchange info once and refreshed when a symbol is missing.
type BinanceGateway struct {
	client BinanceClient

	mu        sync.RWMutex
	precision map[string]types.SymbolPrecision
}

// NewBinanceGateway creates a futures gateway.
// If useTestnet is true, connects to the futures testnet.
// If config.BaseURL is set, it takes precedence over useTestnet.
func NewBinanceGateway(config BinanceConfig, useTestnet bool) (*BinanceGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if useTestnet {
		futures.UseTestnet = true
	}

	client := futures.NewClient(config.APIKey, config.SecretKey)

	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}

	return newBinanceGatewayWithClient(&realBinanceClient{client: client}), nil
}

// newBinanceGatewayWithClient creates a gateway on a custom client.
// This is used for testing with mock clients.
func newBinanceGatewayWithClient(client BinanceClient) *BinanceGateway {
	return &BinanceGateway{
		client:    client,
		mu:        sync.RWMutex{},
		precision: nil,
	}
}

// GetBalance returns the available balance of asset.
func (b *BinanceGateway) GetBalance(ctx context.Context, asset string) (float64, error) {
	balances, err := b.client.NewGetBalanceService().Do(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeExchangeRequestFailed, "failed to get futures balance from Binance", err)
	}

	for _, balance := range balances {
		if balance.Asset != asset {
			continue
		}

		available, err := strconv.ParseFloat(balance.AvailableBalance, 64)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeInvalidResponse, err, "invalid %s balance %q", asset, balance.AvailableBalance)
		}

		return available, nil
	}

	return 0, errors.Newf(errors.ErrCodeAssetNotFound, "asset %s not found in futures wallet", asset)
}

// GetOpenPositions returns the symbols with a non-zero position amount.
func (b *BinanceGateway) GetOpenPositions(ctx context.Context) ([]string, error) {
	positions, err := b.client.NewGetPositionRiskService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExchangeRequestFailed, "failed to get positions from Binance", err)
	}

	symbols := make([]string, 0)

	for _, position := range positions {
		amount, err := strconv.ParseFloat(position.PositionAmt, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidResponse, err, "invalid position amount %q for %s", position.PositionAmt, position.Symbol)
		}

		if amount != 0 {
			symbols = appendUnique(symbols, position.Symbol)
		}
	}

	return symbols, nil
}

// GetOpenOrders returns the symbols with open orders.
func (b *BinanceGateway) GetOpenOrders(ctx context.Context) ([]string, error) {
	orders, err := b.client.NewListOpenOrdersService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExchangeRequestFailed, "failed to list open orders from Binance", err)
	}

	symbols := make([]string, 0)
	for _, order := range orders {
		symbols = appendUnique(symbols, order.Symbol)
	}

	return symbols, nil
}

// CancelOpenOrders cancels every open order of symbol.
func (b *BinanceGateway) CancelOpenOrders(ctx context.Context, symbol string) error {
	err := b.client.NewCancelAllOpenOrdersService().Symbol(symbol).Do(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeOrderCancelFailed, err, "failed to cancel open orders for %s", symbol)
	}

	return nil
}

// GetPrecision returns the price and quantity precision of symbol.
func (b *BinanceGateway) GetPrecision(ctx context.Context, symbol string) (types.SymbolPrecision, error) {
	b.mu.RLock()
	precision, ok := b.precision[symbol]
	b.mu.RUnlock()

	if ok {
		return precision, nil
	}

	if _, err := b.refreshExchangeInfo(ctx); err != nil {
		return types.SymbolPrecision{}, err
	}

	b.mu.RLock()
	precision, ok = b.precision[symbol]
	b.mu.RUnlock()

	if !ok {
		return types.SymbolPrecision{}, errors.Newf(errors.ErrCodeSymbolNotFound, "symbol %s not found in exchange info", symbol)
	}

	return precision, nil
}

// GetCurrentPrice returns the latest price of symbol.
func (b *BinanceGateway) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeExchangeRequestFailed, err, "failed to get price for %s", symbol)
	}

	for _, price := range prices {
		if price.Symbol != symbol {
			continue
		}

		value, err := strconv.ParseFloat(price.Price, 64)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeInvalidResponse, err, "invalid price %q for %s", price.Price, symbol)
		}

		return value, nil
	}

	return 0, errors.Newf(errors.ErrCodeSymbolNotFound, "no price returned for %s", symbol)
}

// SetLeverage sets the initial leverage of symbol.
func (b *BinanceGateway) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	_, err := b.client.NewChangeLeverageService().Symbol(symbol).Leverage(leverage).Do(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeAccountConfigFailed, err, "failed to set leverage %d for %s", leverage, symbol)
	}

	return nil
}

// SetMarginMode switches the margin mode of symbol.
func (b *BinanceGateway) SetMarginMode(ctx context.Context, symbol string, mode types.MarginMode) error {
	var marginType futures.MarginType

	switch mode {
	case types.MarginModeIsolated:
		marginType = futures.MarginTypeIsolated
	case types.MarginModeCrossed:
		marginType = futures.MarginTypeCrossed
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unsupported margin mode: %s", mode)
	}

	err := b.client.NewChangeMarginTypeService().Symbol(symbol).MarginType(marginType).Do(ctx)
	if err != nil && !isAPIErrorCode(err, binanceNoMarginTypeChange) {
		return errors.Wrapf(errors.ErrCodeAccountConfigFailed, err, "failed to set margin mode %s for %s", mode, symbol)
	}

	return nil
}

// PlaceOrder submits one bracket leg.
func (b *BinanceGateway) PlaceOrder(ctx context.Context, request types.OrderRequest) (types.OrderAck, error) {
	if err := request.Validate(); err != nil {
		return types.OrderAck{}, err
	}

	// Map order side
	var side futures.SideType

	switch request.Side {
	case types.PurchaseTypeBuy:
		side = futures.SideTypeBuy
	case types.PurchaseTypeSell:
		side = futures.SideTypeSell
	default:
		return types.OrderAck{}, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported order side: %s", request.Side)
	}

	service := b.client.NewCreateOrderService().
		Symbol(request.Symbol).
		Side(side).
		NewClientOrderID(request.ClientOrderID)

	// Map order type
	switch request.Type {
	case types.OrderTypeLimit:
		service = service.
			Type(futures.OrderTypeLimit).
			TimeInForce(futures.TimeInForceTypeGTC).
			Quantity(utils.FormatDecimal(request.Quantity, request.Precision.Quantity)).
			Price(utils.FormatDecimal(request.Price, request.Precision.Price))
	case types.OrderTypeStopMarket:
		service = service.Type(futures.OrderTypeStopMarket).StopPrice(utils.FormatDecimal(request.StopPrice, request.Precision.Price))
	case types.OrderTypeTakeProfitMarket:
		service = service.Type(futures.OrderTypeTakeProfitMarket).StopPrice(utils.FormatDecimal(request.StopPrice, request.Precision.Price))
	default:
		return types.OrderAck{}, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported order type: %s", request.Type)
	}

	if request.ClosePosition {
		service = service.ClosePosition(true)
	} else if request.Type != types.OrderTypeLimit {
		service = service.Quantity(utils.FormatDecimal(request.Quantity, request.Precision.Quantity))
	}

	if request.WorkingTypeMark {
		service = service.WorkingType(futures.WorkingTypeMarkPrice)
	}

	response, err := service.Do(ctx)
	if err != nil {
		// Only an API error proves the order was refused. Anything else may have reached the matching engine.
		if !isAPIError(err) {
			return types.OrderAck{}, errors.Wrapf(errors.ErrCodeOrderStatusUnknown, err, "status of %s order %s on Binance is unknown", request.Type, request.ClientOrderID)
		}

		return types.OrderAck{}, errors.Wrapf(errors.ErrCodeOrderFailed, err, "failed to place %s order %s on Binance", request.Type, request.ClientOrderID)
	}

	return types.OrderAck{
		OrderID:       strconv.FormatInt(response.OrderID, 10),
		ClientOrderID: response.ClientOrderID,
		Status:        string(response.Status),
	}, nil
}

// GetOrder queries an order by its client order id.
func (b *BinanceGateway) GetOrder(ctx context.Context, symbol string, clientOrderID string) (optional.Option[types.OrderAck], error) {
	order, err := b.client.NewGetOrderService().
		Symbol(symbol).
		OrigClientOrderID(clientOrderID).
		Do(ctx)
	if err != nil {
		if isAPIErrorCode(err, binanceOrderDoesNotExist) {
			return optional.None[types.OrderAck](), nil
		}

		return optional.None[types.OrderAck](), errors.Wrapf(errors.ErrCodeExchangeRequestFailed, err, "failed to get order %s for %s from Binance", clientOrderID, symbol)
	}

	return optional.Some(types.OrderAck{
		OrderID:       strconv.FormatInt(order.OrderID, 10),
		ClientOrderID: order.ClientOrderID,
		Status:        string(order.Status),
	}), nil
}

// ListSymbols returns the trading perpetual contracts quoted in quoteAsset.
func (b *BinanceGateway) ListSymbols(ctx context.Context, quoteAsset string) ([]string, error) {
	info, err := b.refreshExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(info.Symbols))

	for _, symbol := range info.Symbols {
		if symbol.QuoteAsset != quoteAsset || symbol.Status != binanceStatusTrading {
			continue
		}

		if string(symbol.ContractType) != binanceContractPerpetual {
			continue
		}

		symbols = append(symbols, symbol.Symbol)
	}

	sort.Strings(symbols)

	return symbols, nil
}

// GetRealizedPnL sums the latest limit realized PnL records.
func (b *BinanceGateway) GetRealizedPnL(ctx context.Context, limit int) (float64, error) {
	if limit <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "income limit must be positive, got %d", limit)
	}

	incomes, err := b.client.NewGetIncomeHistoryService().
		IncomeType(binanceIncomeRealizedPnL).
		Limit(int64(limit)).
		Do(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeExchangeRequestFailed, "failed to get income history from Binance", err)
	}

	total := 0.0

	for _, income := range incomes {
		value, err := strconv.ParseFloat(income.Income, 64)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeInvalidResponse, err, "invalid income %q", income.Income)
		}

		total += value
	}

	return total, nil
}

// refreshExchangeInfo reloads the precision cache.
func (b *BinanceGateway) refreshExchangeInfo(ctx context.Context) (*futures.ExchangeInfo, error) {
	info, err := b.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExchangeRequestFailed, "failed to get exchange info from Binance", err)
	}

	precision := make(map[string]types.SymbolPrecision, len(info.Symbols))
	for _, symbol := range info.Symbols {
		precision[symbol.Symbol] = types.SymbolPrecision{
			Symbol:   symbol.Symbol,
			Price:    symbol.PricePrecision,
			Quantity: symbol.QuantityPrecision,
		}
	}

	b.mu.Lock()
	b.precision = precision
	b.mu.Unlock()

	return info, nil
}

func isAPIErrorCode(err error, code int64) bool {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}

	return false
}

func isAPIError(err error) bool {
	var apiErr *common.APIError

	return errors.As(err, &apiErr)
}

func appendUnique(symbols []string, symbol string) []string {
	if slices.Contains(symbols, symbol) {
		return symbols
	}

	return append(symbols, symbol)
}
