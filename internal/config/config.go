package config

import (
	stderrors "errors"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/rxtech-lab/trendscout/internal/version"
	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// EnvPrefix is prepended to every environment override, e.g. TRENDSCOUT_EXCHANGE_API_KEY.
const EnvPrefix = "TRENDSCOUT"

// Config is the full runtime configuration of the scanner and the trading loop.
type Config struct {
	// Version is the release that wrote the file, checked against the running binary.
	Version    string           `mapstructure:"version" json:"version" yaml:"version" jsonschema:"title=Version,example=v0.3.0"`
	Exchange   ExchangeConfig   `mapstructure:"exchange" json:"exchange" yaml:"exchange"`
	MarketData MarketDataConfig `mapstructure:"market_data" json:"market_data" yaml:"market_data"`
	Universe   UniverseConfig   `mapstructure:"universe" json:"universe" yaml:"universe"`
	Scanner    ScannerConfig    `mapstructure:"scanner" json:"scanner" yaml:"scanner"`
	Trading    TradingConfig    `mapstructure:"trading" json:"trading" yaml:"trading"`
	Strategy   StrategyConfig   `mapstructure:"strategy" json:"strategy" yaml:"strategy"`
	Log        LogConfig        `mapstructure:"log" json:"log" yaml:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics" json:"metrics" yaml:"metrics"`
}

// ExchangeConfig selects and authenticates the order gateway.
type ExchangeConfig struct {
	Provider       string        `mapstructure:"provider" json:"provider" yaml:"provider" jsonschema:"title=Provider,enum=binance-live,enum=binance-paper" validate:"required,oneof=binance-live binance-paper"`
	APIKey         string        `mapstructure:"api_key" json:"api_key" yaml:"api_key" jsonschema:"title=API Key"`
	APISecret      string        `mapstructure:"api_secret" json:"api_secret" yaml:"api_secret" jsonschema:"title=API Secret"`
	BaseURL        string        `mapstructure:"base_url" json:"base_url" yaml:"base_url" jsonschema:"title=Base URL,description=Overrides the futures REST endpoint" validate:"omitempty,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout" yaml:"request_timeout" jsonschema:"title=Request Timeout,description=Deadline applied to every exchange call" validate:"gt=0"`
}

// MarketDataConfig selects where historical bars come from.
type MarketDataConfig struct {
	Provider      string `mapstructure:"provider" json:"provider" yaml:"provider" jsonschema:"title=Provider,enum=binance,enum=polygon" validate:"required,oneof=binance polygon"`
	PolygonAPIKey string `mapstructure:"polygon_api_key" json:"polygon_api_key" yaml:"polygon_api_key" jsonschema:"title=Polygon API Key" validate:"required_if=Provider polygon"`
}

// UniverseConfig describes which symbols the scanner rescans on every pass.
type UniverseConfig struct {
	Source     string   `mapstructure:"source" json:"source" yaml:"source" jsonschema:"title=Source,enum=exchange,enum=static" validate:"required,oneof=exchange static"`
	QuoteAsset string   `mapstructure:"quote_asset" json:"quote_asset" yaml:"quote_asset" jsonschema:"title=Quote Asset,description=Filter applied to the exchange listing" validate:"required_if=Source exchange"`
	Symbols    []string `mapstructure:"symbols" json:"symbols" yaml:"symbols" jsonschema:"title=Symbols,description=Used when source is static" validate:"dive,required"`
}

// ScannerConfig drives the periodic backtest pass.
type ScannerConfig struct {
	Timeframe              string        `mapstructure:"timeframe" json:"timeframe" yaml:"timeframe" jsonschema:"title=Timeframe,example=5m" validate:"required"`
	LookbackDays           int           `mapstructure:"lookback_days" json:"lookback_days" yaml:"lookback_days" jsonschema:"title=Lookback Days" validate:"gt=0"`
	ProfitThresholdPercent float64       `mapstructure:"profit_threshold_percent" json:"profit_threshold_percent" yaml:"profit_threshold_percent" jsonschema:"title=Profit Threshold,description=Minimum backtest return in percent"`
	Interval               time.Duration `mapstructure:"interval" json:"interval" yaml:"interval" jsonschema:"title=Interval,description=Pause between passes" validate:"gt=0"`
	Cash                   float64       `mapstructure:"cash" json:"cash" yaml:"cash" jsonschema:"title=Cash,description=Starting equity of the simulation" validate:"gt=0"`
	Margin                 float64       `mapstructure:"margin" json:"margin" yaml:"margin" jsonschema:"title=Margin,description=Margin ratio, 0.1 means 10x" validate:"gt=0,lte=1"`
	Commission             float64       `mapstructure:"commission" json:"commission" yaml:"commission" jsonschema:"title=Commission,description=Fee ratio per side" validate:"gte=0,lt=1"`
	TradeSizePercent       float64       `mapstructure:"trade_size_percent" json:"trade_size_percent" yaml:"trade_size_percent" jsonschema:"title=Trade Size,description=Margin per trade in percent of equity" validate:"gt=0,lte=100"`
}

// TradingConfig drives the live trading loop and bracket construction.
type TradingConfig struct {
	Timeframe          string        `mapstructure:"timeframe" json:"timeframe" yaml:"timeframe" jsonschema:"title=Timeframe" validate:"required"`
	SeriesLimit        int           `mapstructure:"series_limit" json:"series_limit" yaml:"series_limit" jsonschema:"title=Series Limit,description=Bars fetched for the live signal" validate:"gt=0"`
	Cooldown           time.Duration `mapstructure:"cooldown" json:"cooldown" yaml:"cooldown" jsonschema:"title=Cooldown" validate:"gte=0"`
	PollInterval       time.Duration `mapstructure:"poll_interval" json:"poll_interval" yaml:"poll_interval" jsonschema:"title=Poll Interval" validate:"gt=0"`
	SymbolPause        time.Duration `mapstructure:"symbol_pause" json:"symbol_pause" yaml:"symbol_pause" jsonschema:"title=Symbol Pause" validate:"gte=0"`
	LegDelay           time.Duration `mapstructure:"leg_delay" json:"leg_delay" yaml:"leg_delay" jsonschema:"title=Leg Delay" validate:"gte=0"`
	Volume             float64       `mapstructure:"volume" json:"volume" yaml:"volume" jsonschema:"title=Volume,description=Notional per trade in quote asset" validate:"gt=0"`
	Leverage           int           `mapstructure:"leverage" json:"leverage" yaml:"leverage" jsonschema:"title=Leverage" validate:"gte=1,lte=125"`
	MarginMode         string        `mapstructure:"margin_mode" json:"margin_mode" yaml:"margin_mode" jsonschema:"title=Margin Mode,enum=ISOLATED,enum=CROSSED" validate:"required,oneof=ISOLATED CROSSED"`
	TakeProfitPercent  float64       `mapstructure:"take_profit_percent" json:"take_profit_percent" yaml:"take_profit_percent" jsonschema:"title=Take Profit" validate:"gt=0"`
	StopLossPercent    float64       `mapstructure:"stop_loss_percent" json:"stop_loss_percent" yaml:"stop_loss_percent" jsonschema:"title=Stop Loss" validate:"gt=0,lt=100"`
	EntryOffsetPercent float64       `mapstructure:"entry_offset_percent" json:"entry_offset_percent" yaml:"entry_offset_percent" jsonschema:"title=Entry Offset" validate:"gte=0,lt=100"`
	SlippagePercent    float64       `mapstructure:"slippage_percent" json:"slippage_percent" yaml:"slippage_percent" jsonschema:"title=Slippage,description=Applied to simulated fills" validate:"gte=0,lt=100"`
	AllowShort         bool          `mapstructure:"allow_short" json:"allow_short" yaml:"allow_short" jsonschema:"title=Allow Short,description=Open shorts on SELL signals"`
}

// StrategyConfig holds indicator periods and RSI thresholds of the signal rule.
type StrategyConfig struct {
	EMAPeriod    int     `mapstructure:"ema_period" json:"ema_period" yaml:"ema_period" jsonschema:"title=EMA Period" validate:"gte=1"`
	RSIPeriod    int     `mapstructure:"rsi_period" json:"rsi_period" yaml:"rsi_period" jsonschema:"title=RSI Period" validate:"gte=2"`
	BuyRSIBelow  float64 `mapstructure:"buy_rsi_below" json:"buy_rsi_below" yaml:"buy_rsi_below" jsonschema:"title=Buy RSI Below" validate:"gt=0,lt=100"`
	SellRSIAbove float64 `mapstructure:"sell_rsi_above" json:"sell_rsi_above" yaml:"sell_rsi_above" jsonschema:"title=Sell RSI Above" validate:"gt=0,lt=100,gtefield=BuyRSIBelow"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error" validate:"required,oneof=debug info warn error"`
	Development bool   `mapstructure:"development" json:"development" yaml:"development" jsonschema:"title=Development"`
}

// MetricsConfig enables the prometheus endpoint when ListenAddr is set.
type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr" yaml:"listen_addr" jsonschema:"title=Listen Address,example=:9090" validate:"omitempty,hostname_port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", version.GetVersion())

	v.SetDefault("exchange.provider", "binance-live")
	v.SetDefault("exchange.api_key", "")
	v.SetDefault("exchange.api_secret", "")
	v.SetDefault("exchange.base_url", "")
	v.SetDefault("exchange.request_timeout", "10s")

	v.SetDefault("market_data.provider", "binance")
	v.SetDefault("market_data.polygon_api_key", "")

	v.SetDefault("universe.source", "exchange")
	v.SetDefault("universe.quote_asset", "USDT")
	v.SetDefault("universe.symbols", []string{})

	v.SetDefault("scanner.timeframe", "5m")
	v.SetDefault("scanner.lookback_days", 30)
	v.SetDefault("scanner.profit_threshold_percent", 1.0)
	v.SetDefault("scanner.interval", "24h")
	v.SetDefault("scanner.cash", 1000.0)
	v.SetDefault("scanner.margin", 0.1)
	v.SetDefault("scanner.commission", 0.0007)
	v.SetDefault("scanner.trade_size_percent", 2.0)

	v.SetDefault("trading.timeframe", "5m")
	v.SetDefault("trading.series_limit", 500)
	v.SetDefault("trading.cooldown", "2m")
	v.SetDefault("trading.poll_interval", "10s")
	v.SetDefault("trading.symbol_pause", "1s")
	v.SetDefault("trading.leg_delay", "1s")
	v.SetDefault("trading.volume", 5.0)
	v.SetDefault("trading.leverage", 2)
	v.SetDefault("trading.margin_mode", "ISOLATED")
	v.SetDefault("trading.take_profit_percent", 3.0)
	v.SetDefault("trading.stop_loss_percent", 1.0)
	v.SetDefault("trading.entry_offset_percent", 1.0)
	v.SetDefault("trading.slippage_percent", 0.02)
	v.SetDefault("trading.allow_short", false)

	v.SetDefault("strategy.ema_period", 5)
	v.SetDefault("strategy.rsi_period", 14)
	v.SetDefault("strategy.buy_rsi_below", 40.0)
	v.SetDefault("strategy.sell_rsi_above", 60.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("metrics.listen_addr", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the YAML file at path (optional), applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if stderrors.Is(err, fs.ErrNotExist) || stderrors.As(err, &notFound) {
				return nil, errors.Wrapf(errors.ErrCodeConfigNotFound, err, "config file %s not found", path)
			}

			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "unable to decode config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration produced by the built-in defaults alone.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)

	return cfg
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if c.Universe.Source == "static" && len(c.Universe.Symbols) == 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "static universe requires at least one symbol")
	}

	return nil
}
