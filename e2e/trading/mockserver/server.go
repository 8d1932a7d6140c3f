// Package mockserver provides a mock Binance USD-M futures server for testing.
// It implements the REST endpoints the exchange gateway and the kline provider use.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/rxtech-lab/trendscout/internal/types"
	"github.com/rxtech-lab/trendscout/mocks"
)

// Binance error codes returned by the mock.
const (
	CodeNoNeedToChangeMargin = -4046
	CodeWouldTrigger         = -2021
	CodeUnknownSymbol        = -1121
	CodeOrderDoesNotExist    = -2013
)

// MockBinanceServer provides a mock Binance futures server for testing.
type MockBinanceServer struct {
	mu sync.RWMutex

	// HTTP server
	httpServer *http.Server
	listener   net.Listener

	// Account state
	balances    map[string]float64
	positions   map[string]float64
	orders      map[int64]*Order
	orderIDSeq  int64
	leverage    map[string]int
	marginTypes map[string]string
	income      []Income

	// Market state
	symbols map[string]*SymbolInfo
	prices  map[string]float64
	series  map[string][]types.MarketData

	// Failure injection
	rejectOrderTypes map[string]string
	delayOrderTypes  map[string]time.Duration
	failPaths        map[string]bool
}

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusNew      OrderStatus = "NEW"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// Order represents a futures order as received by the mock.
type Order struct {
	OrderID       int64
	ClientOrderID string
	Symbol        string
	Side          string
	Type          string
	TimeInForce   string
	Quantity      float64
	Price         float64
	StopPrice     float64
	ClosePosition bool
	WorkingType   string
	Status        OrderStatus
	CreatedAt     time.Time
}

// Income represents one income history entry.
type Income struct {
	Symbol     string
	IncomeType string
	Amount     float64
	Asset      string
}

// SymbolInfo represents contract trading information.
type SymbolInfo struct {
	Symbol            string
	QuoteAsset        string
	ContractType      string
	Status            string
	PricePrecision    int
	QuantityPrecision int
}

// ServerConfig holds configuration for the mock server.
type ServerConfig struct {
	// Balances maps asset to available balance
	Balances map[string]float64
	// Positions maps symbol to position amount, negative for shorts
	Positions map[string]float64
	// Symbols lists the contracts of the exchange info endpoint.
	// Symbols with a series but no entry are added as USDT perpetuals.
	Symbols []SymbolInfo
	// Prices maps symbol to the ticker price
	Prices map[string]float64
	// Series maps symbol to the bars served by the klines endpoint
	Series map[string][]types.MarketData
	// GeneratedSeries is the length of the random walk served for listed symbols without a series
	GeneratedSeries int
	// Income is served by the income history endpoint
	Income []Income
}

// NewMockBinanceServer creates a new mock Binance server.
func NewMockBinanceServer(config ServerConfig) *MockBinanceServer {
	server := &MockBinanceServer{
		mu:               sync.RWMutex{},
		httpServer:       nil,
		listener:         nil,
		balances:         make(map[string]float64),
		positions:        make(map[string]float64),
		orders:           make(map[int64]*Order),
		orderIDSeq:       1000,
		leverage:         make(map[string]int),
		marginTypes:      make(map[string]string),
		income:           slices.Clone(config.Income),
		symbols:          make(map[string]*SymbolInfo),
		prices:           make(map[string]float64),
		series:           make(map[string][]types.MarketData),
		rejectOrderTypes: make(map[string]string),
		delayOrderTypes:  make(map[string]time.Duration),
		failPaths:        make(map[string]bool),
	}

	for asset, amount := range config.Balances {
		server.balances[asset] = amount
	}

	for symbol, amount := range config.Positions {
		server.positions[symbol] = amount
	}

	for symbol, price := range config.Prices {
		server.prices[symbol] = price
	}

	for i := range config.Symbols {
		info := config.Symbols[i]
		server.symbols[info.Symbol] = &info
	}

	for symbol, series := range config.Series {
		server.series[symbol] = slices.Clone(series)
		server.ensureSymbol(symbol)
	}

	if config.GeneratedSeries > 0 {
		for symbol := range server.symbols {
			if _, ok := server.series[symbol]; !ok {
				server.series[symbol] = mocks.Series(symbol, config.GeneratedSeries)
			}
		}
	}

	// default ticker price is the last close
	for symbol, series := range server.series {
		if _, ok := server.prices[symbol]; !ok && len(series) > 0 {
			server.prices[symbol] = series[len(series)-1].Close
		}
	}

	return server
}

// ensureSymbol adds a USDT perpetual with precision 2/3 when symbol is unknown.
func (s *MockBinanceServer) ensureSymbol(symbol string) {
	if _, ok := s.symbols[symbol]; ok {
		return
	}

	s.symbols[symbol] = &SymbolInfo{
		Symbol:            symbol,
		QuoteAsset:        "USDT",
		ContractType:      "PERPETUAL",
		Status:            "TRADING",
		PricePrecision:    2,
		QuantityPrecision: 3,
	}
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockBinanceServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Router returns the REST routes. Versioned paths accept every version the client may use.
func (s *MockBinanceServer) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.failureMiddleware)

	router.HandleFunc("/fapi/v1/exchangeInfo", s.handleExchangeInfo).Methods(http.MethodGet)
	router.HandleFunc("/fapi/v1/klines", s.handleKlines).Methods(http.MethodGet)
	router.HandleFunc("/fapi/{version:v[12]}/ticker/price", s.handleTickerPrice).Methods(http.MethodGet)
	router.HandleFunc("/fapi/{version:v[123]}/balance", s.handleBalance).Methods(http.MethodGet)
	router.HandleFunc("/fapi/{version:v[123]}/positionRisk", s.handlePositionRisk).Methods(http.MethodGet)
	router.HandleFunc("/fapi/v1/openOrders", s.handleOpenOrders).Methods(http.MethodGet)
	router.HandleFunc("/fapi/v1/allOpenOrders", s.handleCancelAllOrders).Methods(http.MethodDelete)
	router.HandleFunc("/fapi/v1/order", s.handleCreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/fapi/v1/order", s.handleGetOrder).Methods(http.MethodGet)
	router.HandleFunc("/fapi/v1/leverage", s.handleLeverage).Methods(http.MethodPost)
	router.HandleFunc("/fapi/v1/marginType", s.handleMarginType).Methods(http.MethodPost)
	router.HandleFunc("/fapi/v1/income", s.handleIncome).Methods(http.MethodGet)

	return router
}

// Stop stops the mock server.
func (s *MockBinanceServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *MockBinanceServer) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *MockBinanceServer) BaseURL() string {
	return "http://" + s.Address()
}

// SetPrice sets the ticker price for a symbol.
func (s *MockBinanceServer) SetPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices[symbol] = price
}

// SetBalance sets the available balance of an asset.
func (s *MockBinanceServer) SetBalance(asset string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[asset] = amount
}

// SetPosition sets the position amount of a symbol, zero closes it.
func (s *MockBinanceServer) SetPosition(symbol string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions[symbol] = amount
}

// RejectOrderType makes every order of orderType fail with message.
func (s *MockBinanceServer) RejectOrderType(orderType string, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rejectOrderTypes[orderType] = message
}

// DelayOrderType accepts orders of orderType but holds the response back for delay,
// as a slow exchange would after the order reached the book.
func (s *MockBinanceServer) DelayOrderType(orderType string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delayOrderTypes[orderType] = delay
}

// FailPath makes every request whose path ends with suffix fail with HTTP 500.
func (s *MockBinanceServer) FailPath(suffix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failPaths[suffix] = true
}

// AddOpenOrder stores a resting order, as left behind by an earlier bracket.
func (s *MockBinanceServer) AddOpenOrder(symbol string, orderType string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderIDSeq++
	s.orders[s.orderIDSeq] = &Order{
		OrderID:       s.orderIDSeq,
		ClientOrderID: fmt.Sprintf("stale-%d", s.orderIDSeq),
		Symbol:        symbol,
		Side:          "SELL",
		Type:          orderType,
		TimeInForce:   "",
		Quantity:      0,
		Price:         0,
		StopPrice:     0,
		ClosePosition: true,
		WorkingType:   "MARK_PRICE",
		Status:        OrderStatusNew,
		CreatedAt:     time.Now(),
	}

	return s.orderIDSeq
}

// Orders returns every order received, ordered by id.
func (s *MockBinanceServer) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Order, 0, len(s.orders))
	for _, order := range s.orders {
		result = append(result, *order)
	}

	slices.SortFunc(result, func(a, b Order) int {
		return int(a.OrderID - b.OrderID)
	})

	return result
}

// Leverage returns the leverage last set for symbol.
func (s *MockBinanceServer) Leverage(symbol string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.leverage[symbol]
}

// MarginType returns the margin type last set for symbol.
func (s *MockBinanceServer) MarginType(symbol string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.marginTypes[symbol]
}

func (s *MockBinanceServer) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		fail := false
		for suffix := range s.failPaths {
			if strings.HasSuffix(r.URL.Path, suffix) {
				fail = true
			}
		}
		s.mu.RUnlock()

		if fail {
			writeError(w, http.StatusInternalServerError, -1000, "An unknown error occurred while processing the request.")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// REST API Handlers

// handleExchangeInfo handles GET /fapi/v1/exchangeInfo
func (s *MockBinanceServer) handleExchangeInfo(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make([]map[string]any, 0, len(s.symbols))
	for _, info := range s.symbols {
		symbols = append(symbols, map[string]any{
			"symbol":            info.Symbol,
			"pair":              info.Symbol,
			"contractType":      info.ContractType,
			"status":            info.Status,
			"quoteAsset":        info.QuoteAsset,
			"marginAsset":       info.QuoteAsset,
			"pricePrecision":    info.PricePrecision,
			"quantityPrecision": info.QuantityPrecision,
		})
	}

	writeJSON(w, map[string]any{
		"timezone":   "UTC",
		"serverTime": time.Now().UnixMilli(),
		"symbols":    symbols,
	})
}

// handleKlines handles GET /fapi/v1/klines
// It returns the latest limit bars opened at or before endTime.
func (s *MockBinanceServer) handleKlines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	symbol := query.Get("symbol")
	interval := query.Get("interval")

	if symbol == "" || interval == "" {
		writeError(w, http.StatusBadRequest, -1102, "Mandatory parameter was not sent.")

		return
	}

	limit := 500
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, -1100, "Illegal characters found in parameter 'limit'.")

			return
		}

		limit = parsed
	}

	endTime := int64(-1)
	if raw := query.Get("endTime"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, -1100, "Illegal characters found in parameter 'endTime'.")

			return
		}

		endTime = parsed
	}

	s.mu.RLock()
	series, ok := s.series[symbol]
	s.mu.RUnlock()

	if !ok {
		writeError(w, http.StatusBadRequest, CodeUnknownSymbol, "Invalid symbol.")

		return
	}

	end := len(series)
	if endTime >= 0 {
		end = 0
		for end < len(series) && series[end].Time.UnixMilli() <= endTime {
			end++
		}
	}

	start := max(end-limit, 0)

	klines := make([][]any, 0, end-start)
	for _, bar := range series[start:end] {
		klines = append(klines, []any{
			bar.Time.UnixMilli(),
			formatFloat(bar.Open),
			formatFloat(bar.High),
			formatFloat(bar.Low),
			formatFloat(bar.Close),
			formatFloat(bar.Volume),
			bar.Time.Add(5*time.Minute).UnixMilli() - 1,
			formatFloat(bar.Volume * bar.Close),
			100,
			formatFloat(bar.Volume / 2),
			formatFloat(bar.Volume * bar.Close / 2),
			"0",
		})
	}

	writeJSON(w, klines)
}

// handleTickerPrice handles GET /fapi/v1/ticker/price
func (s *MockBinanceServer) handleTickerPrice(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type priceResponse struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
		Time   int64  `json:"time"`
	}

	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		price, ok := s.prices[symbol]
		if !ok {
			writeError(w, http.StatusBadRequest, CodeUnknownSymbol, "Invalid symbol.")

			return
		}

		writeJSON(w, priceResponse{Symbol: symbol, Price: formatFloat(price), Time: time.Now().UnixMilli()})

		return
	}

	response := make([]priceResponse, 0, len(s.prices))
	for symbol, price := range s.prices {
		response = append(response, priceResponse{Symbol: symbol, Price: formatFloat(price), Time: time.Now().UnixMilli()})
	}

	writeJSON(w, response)
}

// handleBalance handles GET /fapi/v2/balance
func (s *MockBinanceServer) handleBalance(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make([]map[string]any, 0, len(s.balances))
	for asset, amount := range s.balances {
		balances = append(balances, map[string]any{
			"accountAlias":       "mock",
			"asset":              asset,
			"balance":            formatFloat(amount),
			"crossWalletBalance": formatFloat(amount),
			"crossUnPnl":         "0",
			"availableBalance":   formatFloat(amount),
			"maxWithdrawAmount":  formatFloat(amount),
		})
	}

	writeJSON(w, balances)
}

// handlePositionRisk handles GET /fapi/v2/positionRisk
func (s *MockBinanceServer) handlePositionRisk(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := make([]map[string]any, 0, len(s.symbols))
	for symbol := range s.symbols {
		positions = append(positions, map[string]any{
			"symbol":       symbol,
			"positionAmt":  formatFloat(s.positions[symbol]),
			"entryPrice":   "0",
			"markPrice":    formatFloat(s.prices[symbol]),
			"marginType":   strings.ToLower(s.marginTypes[symbol]),
			"positionSide": "BOTH",
		})
	}

	writeJSON(w, positions)
}

// handleOpenOrders handles GET /fapi/v1/openOrders
func (s *MockBinanceServer) handleOpenOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbol := r.URL.Query().Get("symbol")

	orders := make([]map[string]any, 0)
	for _, order := range s.orders {
		if order.Status != OrderStatusNew || (symbol != "" && order.Symbol != symbol) {
			continue
		}

		orders = append(orders, orderResponse(order))
	}

	writeJSON(w, orders)
}

// handleCancelAllOrders handles DELETE /fapi/v1/allOpenOrders
func (s *MockBinanceServer) handleCancelAllOrders(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, -1102, "Failed to parse form")

		return
	}

	symbol := params.Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, -1102, "Mandatory parameter 'symbol' was not sent.")

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.Symbol == symbol && order.Status == OrderStatusNew {
			order.Status = OrderStatusCanceled
		}
	}

	writeJSON(w, map[string]any{"code": 200, "msg": "The operation of cancel all open order is done."})
}

// handleCreateOrder handles POST /fapi/v1/order
func (s *MockBinanceServer) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, -1102, "Failed to parse form")

		return
	}

	order := &Order{
		OrderID:       0,
		ClientOrderID: params.Get("newClientOrderId"),
		Symbol:        params.Get("symbol"),
		Side:          params.Get("side"),
		Type:          params.Get("type"),
		TimeInForce:   params.Get("timeInForce"),
		Quantity:      parseFloat(params.Get("quantity")),
		Price:         parseFloat(params.Get("price")),
		StopPrice:     parseFloat(params.Get("stopPrice")),
		ClosePosition: params.Get("closePosition") == "true",
		WorkingType:   params.Get("workingType"),
		Status:        OrderStatusNew,
		CreatedAt:     time.Now(),
	}

	if order.Symbol == "" || order.Side == "" || order.Type == "" {
		writeError(w, http.StatusBadRequest, -1102, "Mandatory parameter was not sent.")

		return
	}

	s.mu.Lock()

	if _, ok := s.symbols[order.Symbol]; !ok {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, CodeUnknownSymbol, "Invalid symbol.")

		return
	}

	if message, ok := s.rejectOrderTypes[order.Type]; ok {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, CodeWouldTrigger, message)

		return
	}

	s.orderIDSeq++
	order.OrderID = s.orderIDSeq
	if order.ClientOrderID == "" {
		order.ClientOrderID = fmt.Sprintf("mock-%d", order.OrderID)
	}

	s.orders[order.OrderID] = order
	response := orderResponse(order)
	delay := s.delayOrderTypes[order.Type]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	writeJSON(w, response)
}

// handleGetOrder handles GET /fapi/v1/order
func (s *MockBinanceServer) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, -1102, "Failed to parse form")

		return
	}

	symbol := params.Get("symbol")
	clientOrderID := params.Get("origClientOrderId")
	orderID, _ := strconv.ParseInt(params.Get("orderId"), 10, 64)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.Symbol != symbol {
			continue
		}

		if (clientOrderID != "" && order.ClientOrderID == clientOrderID) || (orderID != 0 && order.OrderID == orderID) {
			writeJSON(w, orderResponse(order))

			return
		}
	}

	writeError(w, http.StatusBadRequest, CodeOrderDoesNotExist, "Order does not exist.")
}

// handleLeverage handles POST /fapi/v1/leverage
func (s *MockBinanceServer) handleLeverage(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, -1102, "Failed to parse form")

		return
	}

	symbol := params.Get("symbol")

	leverage, err := strconv.Atoi(params.Get("leverage"))
	if err != nil || leverage < 1 || leverage > 125 {
		writeError(w, http.StatusBadRequest, -4028, "Leverage is not valid")

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.leverage[symbol] = leverage

	writeJSON(w, map[string]any{
		"leverage":         leverage,
		"maxNotionalValue": "1000000",
		"symbol":           symbol,
	})
}

// handleMarginType handles POST /fapi/v1/marginType
func (s *MockBinanceServer) handleMarginType(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, -1102, "Failed to parse form")

		return
	}

	symbol := params.Get("symbol")
	marginType := params.Get("marginType")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.marginTypes[symbol] == marginType {
		writeError(w, http.StatusBadRequest, CodeNoNeedToChangeMargin, "No need to change margin type.")

		return
	}

	s.marginTypes[symbol] = marginType

	writeJSON(w, map[string]any{"code": 200, "msg": "success"})
}

// handleIncome handles GET /fapi/v1/income
func (s *MockBinanceServer) handleIncome(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	incomeType := r.URL.Query().Get("incomeType")
	limit := len(s.income)

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed < limit {
			limit = parsed
		}
	}

	entries := make([]map[string]any, 0, limit)
	for i, income := range s.income {
		if len(entries) == limit {
			break
		}

		if incomeType != "" && income.IncomeType != incomeType {
			continue
		}

		entries = append(entries, map[string]any{
			"symbol":     income.Symbol,
			"incomeType": income.IncomeType,
			"income":     formatFloat(income.Amount),
			"asset":      income.Asset,
			"info":       income.IncomeType,
			"time":       time.Now().UnixMilli(),
			"tranId":     int64(9000 + i),
			"tradeId":    strconv.Itoa(i),
		})
	}

	writeJSON(w, entries)
}

func orderResponse(order *Order) map[string]any {
	return map[string]any{
		"symbol":        order.Symbol,
		"orderId":       order.OrderID,
		"clientOrderId": order.ClientOrderID,
		"side":          order.Side,
		"type":          order.Type,
		"origType":      order.Type,
		"status":        string(order.Status),
		"timeInForce":   order.TimeInForce,
		"price":         formatFloat(order.Price),
		"origQty":       formatFloat(order.Quantity),
		"executedQty":   "0",
		"stopPrice":     formatFloat(order.StopPrice),
		"closePosition": order.ClosePosition,
		"workingType":   order.WorkingType,
		"positionSide":  "BOTH",
		"updateTime":    order.CreatedAt.UnixMilli(),
	}
}

// requestParams merges the query string with a form encoded body, whatever the method.
func requestParams(r *http.Request) (url.Values, error) {
	params := r.URL.Query()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}

	for key, values := range form {
		for _, value := range values {
			params.Add(key, value)
		}
	}

	return params, nil
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "msg": message})
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func parseFloat(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return value
}
