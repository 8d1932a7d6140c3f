package trading_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/trendscout/internal/exchange"
	"github.com/rxtech-lab/trendscout/internal/marketdata"
)

// BinanceIntegrationTestSuite contains read-only integration tests for the futures gateway.
// These tests require BINANCE_TESTNET_API_KEY and BINANCE_TESTNET_SECRET_KEY environment variables.
type BinanceIntegrationTestSuite struct {
	suite.Suite
	gateway *exchange.BinanceGateway
}

func TestBinanceIntegrationSuite(t *testing.T) {
	suite.Run(t, new(BinanceIntegrationTestSuite))
}

func (suite *BinanceIntegrationTestSuite) SetupTest() {
	apiKey := os.Getenv("BINANCE_TESTNET_API_KEY")
	secretKey := os.Getenv("BINANCE_TESTNET_SECRET_KEY")

	if apiKey == "" || secretKey == "" {
		suite.T().Skip("Skipping integration test: BINANCE_TESTNET_API_KEY and BINANCE_TESTNET_SECRET_KEY not set")
	}

	gateway, err := exchange.NewBinanceGateway(exchange.BinanceConfig{
		APIKey:    apiKey,
		SecretKey: secretKey,
		BaseURL:   "",
	}, true)
	suite.Require().NoError(err)

	suite.gateway = gateway
}

func (suite *BinanceIntegrationTestSuite) context() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	suite.T().Cleanup(cancel)

	return ctx
}

func (suite *BinanceIntegrationTestSuite) TestIntegration_GetBalance() {
	balance, err := suite.gateway.GetBalance(suite.context(), "USDT")
	suite.NoError(err)
	suite.GreaterOrEqual(balance, float64(0))
}

func (suite *BinanceIntegrationTestSuite) TestIntegration_GetOpenPositionsAndOrders() {
	positions, err := suite.gateway.GetOpenPositions(suite.context())
	suite.NoError(err)
	suite.NotNil(positions)

	orders, err := suite.gateway.GetOpenOrders(suite.context())
	suite.NoError(err)
	suite.NotNil(orders)
}

func (suite *BinanceIntegrationTestSuite) TestIntegration_ListSymbols() {
	symbols, err := suite.gateway.ListSymbols(suite.context(), "USDT")
	suite.NoError(err)
	suite.Contains(symbols, "BTCUSDT")
}

func (suite *BinanceIntegrationTestSuite) TestIntegration_GetPrecisionAndPrice() {
	precision, err := suite.gateway.GetPrecision(suite.context(), "BTCUSDT")
	suite.NoError(err)
	suite.GreaterOrEqual(precision.Price, 0)
	suite.GreaterOrEqual(precision.Quantity, 0)

	price, err := suite.gateway.GetCurrentPrice(suite.context(), "BTCUSDT")
	suite.NoError(err)
	suite.Greater(price, float64(0))
}

func (suite *BinanceIntegrationTestSuite) TestIntegration_GetRealizedPnL() {
	_, err := suite.gateway.GetRealizedPnL(suite.context(), 10)
	suite.NoError(err)
}

func (suite *BinanceIntegrationTestSuite) TestIntegration_GetSeries() {
	// klines are public, the production endpoint serves them without keys
	provider := marketdata.NewBinanceProvider("")

	series, err := provider.GetSeries(suite.context(), "BTCUSDT", "5m", 50)
	suite.NoError(err)
	suite.Len(series, 50)
}
