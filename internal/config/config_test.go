package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/trendscout/internal/version"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *ConfigTestSuite) writeFile(content string) string {
	path := filepath.Join(suite.dir, "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *ConfigTestSuite) TestLoadDefaults() {
	cfg, err := Load("")
	suite.Require().NoError(err)

	suite.Equal("binance-live", cfg.Exchange.Provider)
	suite.Equal(10*time.Second, cfg.Exchange.RequestTimeout)
	suite.Equal("binance", cfg.MarketData.Provider)
	suite.Equal("exchange", cfg.Universe.Source)
	suite.Equal("USDT", cfg.Universe.QuoteAsset)
	suite.Equal("5m", cfg.Scanner.Timeframe)
	suite.Equal(30, cfg.Scanner.LookbackDays)
	suite.Equal(1.0, cfg.Scanner.ProfitThresholdPercent)
	suite.Equal(24*time.Hour, cfg.Scanner.Interval)
	suite.Equal(1000.0, cfg.Scanner.Cash)
	suite.Equal(0.1, cfg.Scanner.Margin)
	suite.Equal(0.0007, cfg.Scanner.Commission)
	suite.Equal(2*time.Minute, cfg.Trading.Cooldown)
	suite.Equal(10*time.Second, cfg.Trading.PollInterval)
	suite.Equal(time.Second, cfg.Trading.SymbolPause)
	suite.Equal(time.Second, cfg.Trading.LegDelay)
	suite.Equal(500, cfg.Trading.SeriesLimit)
	suite.Equal(5.0, cfg.Trading.Volume)
	suite.Equal(2, cfg.Trading.Leverage)
	suite.Equal("ISOLATED", cfg.Trading.MarginMode)
	suite.Equal(3.0, cfg.Trading.TakeProfitPercent)
	suite.Equal(1.0, cfg.Trading.StopLossPercent)
	suite.Equal(1.0, cfg.Trading.EntryOffsetPercent)
	suite.Equal(0.02, cfg.Trading.SlippagePercent)
	suite.False(cfg.Trading.AllowShort)
	suite.Equal(5, cfg.Strategy.EMAPeriod)
	suite.Equal(14, cfg.Strategy.RSIPeriod)
	suite.Equal(40.0, cfg.Strategy.BuyRSIBelow)
	suite.Equal(60.0, cfg.Strategy.SellRSIAbove)
	suite.Equal("info", cfg.Log.Level)
	suite.Empty(cfg.Metrics.ListenAddr)
}

func (suite *ConfigTestSuite) TestLoadFileOverridesDefaults() {
	path := suite.writeFile(`
universe:
  source: static
  symbols: [BTCUSDT, ETHUSDT]
trading:
  cooldown: 5m
  volume: 20
  allow_short: true
log:
  level: debug
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal("static", cfg.Universe.Source)
	suite.Equal([]string{"BTCUSDT", "ETHUSDT"}, cfg.Universe.Symbols)
	suite.Equal(5*time.Minute, cfg.Trading.Cooldown)
	suite.Equal(20.0, cfg.Trading.Volume)
	suite.True(cfg.Trading.AllowShort)
	suite.Equal("debug", cfg.Log.Level)
	// untouched keys keep their defaults
	suite.Equal(2, cfg.Trading.Leverage)
}

func (suite *ConfigTestSuite) TestLoadEnvOverride() {
	suite.T().Setenv("TRENDSCOUT_EXCHANGE_API_KEY", "key-from-env")
	suite.T().Setenv("TRENDSCOUT_TRADING_LEVERAGE", "5")

	cfg, err := Load("")
	suite.Require().NoError(err)
	suite.Equal("key-from-env", cfg.Exchange.APIKey)
	suite.Equal(5, cfg.Trading.Leverage)
}

func (suite *ConfigTestSuite) TestLoadChecksFileVersion() {
	original := version.Version
	defer func() { version.Version = original }()

	version.Version = "v0.3.2"

	cfg, err := Load(suite.writeFile("version: v0.3.0\n"))
	suite.Require().NoError(err)
	suite.Equal("v0.3.0", cfg.Version)

	_, err = Load(suite.writeFile("version: v0.2.0\n"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
	suite.Contains(err.Error(), "minor version mismatch")
}

func (suite *ConfigTestSuite) TestLoadMissingFile() {
	cfg, err := Load(filepath.Join(suite.dir, "missing.yaml"))
	suite.Error(err)
	suite.Nil(cfg)
	suite.True(errors.HasCode(err, errors.ErrCodeConfigNotFound))
}

func (suite *ConfigTestSuite) TestLoadInvalidValues() {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown margin mode", content: "trading:\n  margin_mode: PORTFOLIO\n"},
		{name: "zero volume", content: "trading:\n  volume: 0\n"},
		{name: "static universe without symbols", content: "universe:\n  source: static\n"},
		{name: "polygon without key", content: "market_data:\n  provider: polygon\n"},
		{name: "inverted rsi thresholds", content: "strategy:\n  buy_rsi_below: 70\n  sell_rsi_above: 30\n"},
		{name: "bad log level", content: "log:\n  level: loud\n"},
		{name: "leverage too high", content: "trading:\n  leverage: 500\n"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg, err := Load(suite.writeFile(tc.content))
			suite.Error(err)
			suite.Nil(cfg)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestDefaultMatchesLoad() {
	cfg, err := Load("")
	suite.Require().NoError(err)
	suite.Equal(Default(), *cfg)
}

func (suite *ConfigTestSuite) TestDefaultYAMLRoundTrip() {
	out, err := DefaultYAML()
	suite.Require().NoError(err)

	var raw map[string]any
	suite.Require().NoError(yaml.Unmarshal(out, &raw))
	suite.Contains(raw, "trading")
	suite.Contains(raw, "scanner")

	cfg, err := Load(suite.writeFile(string(out)))
	suite.Require().NoError(err)
	suite.Equal(2*time.Minute, cfg.Trading.Cooldown)
	suite.Equal(24*time.Hour, cfg.Scanner.Interval)
}

func (suite *ConfigTestSuite) TestSchema() {
	schema, err := Schema()
	suite.Require().NoError(err)
	suite.Contains(schema, "\"exchange\"")
	suite.Contains(schema, "\"take_profit_percent\"")
	suite.Contains(schema, "binance-paper")
}
