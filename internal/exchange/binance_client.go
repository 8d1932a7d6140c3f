package exchange

import (
	"context"

	"github.com/adshao/go-binance/v2/futures"
)

// Service interfaces for mocking the Binance futures API

// CreateOrderService interface for creating orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side futures.SideType) CreateOrderService
	Type(orderType futures.OrderType) CreateOrderService
	TimeInForce(tif futures.TimeInForceType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Price(price string) CreateOrderService
	StopPrice(stopPrice string) CreateOrderService
	ClosePosition(closePosition bool) CreateOrderService
	WorkingType(workingType futures.WorkingType) CreateOrderService
	NewClientOrderID(clientOrderID string) CreateOrderService
	Do(ctx context.Context) (*futures.CreateOrderResponse, error)
}

// GetBalanceService interface for getting the futures wallet balances.
type GetBalanceService interface {
	Do(ctx context.Context) ([]*futures.Balance, error)
}

// GetPositionRiskService interface for listing positions.
type GetPositionRiskService interface {
	Do(ctx context.Context) ([]*futures.PositionRisk, error)
}

// ListOpenOrdersService interface for listing open orders.
type ListOpenOrdersService interface {
	Do(ctx context.Context) ([]*futures.Order, error)
}

// CancelAllOpenOrdersService interface for canceling all open orders for a symbol.
type CancelAllOpenOrdersService interface {
	Symbol(symbol string) CancelAllOpenOrdersService
	Do(ctx context.Context) error
}

// ExchangeInfoService interface for reading symbol metadata.
type ExchangeInfoService interface {
	Do(ctx context.Context) (*futures.ExchangeInfo, error)
}

// ListPricesService interface for reading the latest prices.
type ListPricesService interface {
	Symbol(symbol string) ListPricesService
	Do(ctx context.Context) ([]*futures.SymbolPrice, error)
}

// ChangeLeverageService interface for setting the initial leverage.
type ChangeLeverageService interface {
	Symbol(symbol string) ChangeLeverageService
	Leverage(leverage int) ChangeLeverageService
	Do(ctx context.Context) (*futures.SymbolLeverage, error)
}

// ChangeMarginTypeService interface for switching isolated and cross margin.
type ChangeMarginTypeService interface {
	Symbol(symbol string) ChangeMarginTypeService
	MarginType(marginType futures.MarginType) ChangeMarginTypeService
	Do(ctx context.Context) error
}

// GetIncomeHistoryService interface for reading the income history.
type GetIncomeHistoryService interface {
	IncomeType(incomeType string) GetIncomeHistoryService
	Limit(limit int64) GetIncomeHistoryService
	Do(ctx context.Context) ([]*futures.IncomeHistory, error)
}

// GetOrderService interface for querying one order.
type GetOrderService interface {
	Symbol(symbol string) GetOrderService
	OrigClientOrderID(clientOrderID string) GetOrderService
	Do(ctx context.Context) (*futures.Order, error)
}

// BinanceClient interface abstracts the futures client for testing.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetBalanceService() GetBalanceService
	NewGetPositionRiskService() GetPositionRiskService
	NewListOpenOrdersService() ListOpenOrdersService
	NewCancelAllOpenOrdersService() CancelAllOpenOrdersService
	NewExchangeInfoService() ExchangeInfoService
	NewListPricesService() ListPricesService
	NewChangeLeverageService() ChangeLeverageService
	NewChangeMarginTypeService() ChangeMarginTypeService
	NewGetIncomeHistoryService() GetIncomeHistoryService
	NewGetOrderService() GetOrderService
}

// realBinanceClient wraps the actual futures.Client.
type realBinanceClient struct {
	client *futures.Client
}

func (r *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceClient) NewGetBalanceService() GetBalanceService {
	return &realGetBalanceService{service: r.client.NewGetBalanceService()}
}

func (r *realBinanceClient) NewGetPositionRiskService() GetPositionRiskService {
	return &realGetPositionRiskService{service: r.client.NewGetPositionRiskService()}
}

func (r *realBinanceClient) NewListOpenOrdersService() ListOpenOrdersService {
	return &realListOpenOrdersService{service: r.client.NewListOpenOrdersService()}
}

func (r *realBinanceClient) NewCancelAllOpenOrdersService() CancelAllOpenOrdersService {
	return &realCancelAllOpenOrdersService{service: r.client.NewCancelAllOpenOrdersService()}
}

func (r *realBinanceClient) NewExchangeInfoService() ExchangeInfoService {
	return &realExchangeInfoService{service: r.client.NewExchangeInfoService()}
}

func (r *realBinanceClient) NewListPricesService() ListPricesService {
	return &realListPricesService{service: r.client.NewListPricesService()}
}

func (r *realBinanceClient) NewChangeLeverageService() ChangeLeverageService {
	return &realChangeLeverageService{service: r.client.NewChangeLeverageService()}
}

func (r *realBinanceClient) NewChangeMarginTypeService() ChangeMarginTypeService {
	return &realChangeMarginTypeService{service: r.client.NewChangeMarginTypeService()}
}

func (r *realBinanceClient) NewGetIncomeHistoryService() GetIncomeHistoryService {
	return &realGetIncomeHistoryService{service: r.client.NewGetIncomeHistoryService()}
}

func (r *realBinanceClient) NewGetOrderService() GetOrderService {
	return &realGetOrderService{service: r.client.NewGetOrderService()}
}

// Real service wrappers

type realCreateOrderService struct {
	service *futures.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side futures.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType futures.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) TimeInForce(tif futures.TimeInForceType) CreateOrderService {
	s.service = s.service.TimeInForce(tif)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) Price(price string) CreateOrderService {
	s.service = s.service.Price(price)

	return s
}

func (s *realCreateOrderService) StopPrice(stopPrice string) CreateOrderService {
	s.service = s.service.StopPrice(stopPrice)

	return s
}

func (s *realCreateOrderService) ClosePosition(closePosition bool) CreateOrderService {
	s.service = s.service.ClosePosition(closePosition)

	return s
}

func (s *realCreateOrderService) WorkingType(workingType futures.WorkingType) CreateOrderService {
	s.service = s.service.WorkingType(workingType)

	return s
}

func (s *realCreateOrderService) NewClientOrderID(clientOrderID string) CreateOrderService {
	s.service = s.service.NewClientOrderID(clientOrderID)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*futures.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetBalanceService struct {
	service *futures.GetBalanceService
}

func (s *realGetBalanceService) Do(ctx context.Context) ([]*futures.Balance, error) {
	return s.service.Do(ctx)
}

type realGetPositionRiskService struct {
	service *futures.GetPositionRiskService
}

func (s *realGetPositionRiskService) Do(ctx context.Context) ([]*futures.PositionRisk, error) {
	return s.service.Do(ctx)
}

type realListOpenOrdersService struct {
	service *futures.ListOpenOrdersService
}

func (s *realListOpenOrdersService) Do(ctx context.Context) ([]*futures.Order, error) {
	return s.service.Do(ctx)
}

type realCancelAllOpenOrdersService struct {
	service *futures.CancelAllOpenOrdersService
}

func (s *realCancelAllOpenOrdersService) Symbol(symbol string) CancelAllOpenOrdersService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCancelAllOpenOrdersService) Do(ctx context.Context) error {
	return s.service.Do(ctx)
}

type realExchangeInfoService struct {
	service *futures.ExchangeInfoService
}

func (s *realExchangeInfoService) Do(ctx context.Context) (*futures.ExchangeInfo, error) {
	return s.service.Do(ctx)
}

type realListPricesService struct {
	service *futures.ListPricesService
}

func (s *realListPricesService) Symbol(symbol string) ListPricesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realListPricesService) Do(ctx context.Context) ([]*futures.SymbolPrice, error) {
	return s.service.Do(ctx)
}

type realChangeLeverageService struct {
	service *futures.ChangeLeverageService
}

func (s *realChangeLeverageService) Symbol(symbol string) ChangeLeverageService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realChangeLeverageService) Leverage(leverage int) ChangeLeverageService {
	s.service = s.service.Leverage(leverage)

	return s
}

func (s *realChangeLeverageService) Do(ctx context.Context) (*futures.SymbolLeverage, error) {
	return s.service.Do(ctx)
}

type realChangeMarginTypeService struct {
	service *futures.ChangeMarginTypeService
}

func (s *realChangeMarginTypeService) Symbol(symbol string) ChangeMarginTypeService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realChangeMarginTypeService) MarginType(marginType futures.MarginType) ChangeMarginTypeService {
	s.service = s.service.MarginType(marginType)

	return s
}

func (s *realChangeMarginTypeService) Do(ctx context.Context) error {
	return s.service.Do(ctx)
}

type realGetIncomeHistoryService struct {
	service *futures.GetIncomeHistoryService
}

func (s *realGetIncomeHistoryService) IncomeType(incomeType string) GetIncomeHistoryService {
	s.service = s.service.IncomeType(incomeType)

	return s
}

func (s *realGetIncomeHistoryService) Limit(limit int64) GetIncomeHistoryService {
	s.service = s.service.Limit(limit)

	return s
}

func (s *realGetIncomeHistoryService) Do(ctx context.Context) ([]*futures.IncomeHistory, error) {
	return s.service.Do(ctx)
}

type realGetOrderService struct {
	service *futures.GetOrderService
}

func (s *realGetOrderService) Symbol(symbol string) GetOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realGetOrderService) OrigClientOrderID(clientOrderID string) GetOrderService {
	s.service = s.service.OrigClientOrderID(clientOrderID)

	return s
}

func (s *realGetOrderService) Do(ctx context.Context) (*futures.Order, error) {
	return s.service.Do(ctx)
}
