package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SimulatedTrade is one round trip of the batch backtest.
type SimulatedTrade struct {
	EntryTime  time.Time `yaml:"entry_time" json:"entry_time"`
	ExitTime   time.Time `yaml:"exit_time" json:"exit_time"`
	EntryPrice float64   `yaml:"entry_price" json:"entry_price"`
	ExitPrice  float64   `yaml:"exit_price" json:"exit_price"`
	Quantity   float64   `yaml:"quantity" json:"quantity"`
	// PnL is net of commission on both sides.
	PnL float64 `yaml:"pnl" json:"pnl"`
	// ReturnPercent is the price move of the trade in percent, net of commission.
	ReturnPercent float64 `yaml:"return_percent" json:"return_percent"`
	// ExitReason is one of stop_loss, take_profit, signal, end_of_data.
	ExitReason string `yaml:"exit_reason" json:"exit_reason"`
}

const (
	ExitReasonStopLoss   = "stop_loss"
	ExitReasonTakeProfit = "take_profit"
	ExitReasonSignal     = "signal"
	ExitReasonEndOfData  = "end_of_data"
)

// BacktestResult summarizes a simulation of the signal rule over a series.
type BacktestResult struct {
	Symbol string    `yaml:"symbol" json:"symbol"`
	Start  time.Time `yaml:"start" json:"start"`
	End    time.Time `yaml:"end" json:"end"`
	Bars   int       `yaml:"bars" json:"bars"`
	// Trades is the number of closed round trips.
	Trades int `yaml:"trades" json:"trades"`
	// ReturnPercent is (final equity - start equity) / start equity in percent.
	ReturnPercent float64 `yaml:"return_percent" json:"return_percent"`
	// WinRatePercent is NaN when no trade closed.
	WinRatePercent    float64 `yaml:"win_rate_percent" json:"win_rate_percent"`
	EquityStart       float64 `yaml:"equity_start" json:"equity_start"`
	EquityFinal       float64 `yaml:"equity_final" json:"equity_final"`
	EquityPeak        float64 `yaml:"equity_peak" json:"equity_peak"`
	MaxDrawdown       float64 `yaml:"max_drawdown_percent" json:"max_drawdown_percent"`
	ProfitFactor      float64 `yaml:"profit_factor" json:"profit_factor"`
	ExpectancyPercent float64 `yaml:"expectancy_percent" json:"expectancy_percent"`
	SQN               float64 `yaml:"sqn" json:"sqn"`
	// TradeLog holds every closed trade in order.
	TradeLog []SimulatedTrade `yaml:"trade_log,omitempty" json:"trade_log,omitempty"`
}

// ScanRecord is the per-symbol outcome of one scanner pass.
type ScanRecord struct {
	Symbol     string         `yaml:"symbol" json:"symbol"`
	Result     BacktestResult `yaml:"result" json:"result"`
	Err        error          `yaml:"-" json:"-"`
	Error      string         `yaml:"error,omitempty" json:"error,omitempty"`
	Profitable bool           `yaml:"profitable" json:"profitable"`
	Duration   time.Duration  `yaml:"duration" json:"duration"`
}

// ScanReport is one complete scanner pass.
type ScanReport struct {
	Generation uint64       `yaml:"generation" json:"generation"`
	Started    time.Time    `yaml:"started" json:"started"`
	Finished   time.Time    `yaml:"finished" json:"finished"`
	Universe   int          `yaml:"universe" json:"universe"`
	Records    []ScanRecord `yaml:"records" json:"records"`
	Candidates []string     `yaml:"candidates" json:"candidates"`
}

// Failed counts the records whose fetch or backtest failed.
func (r ScanReport) Failed() int {
	failed := 0
	for _, record := range r.Records {
		if record.Err != nil {
			failed++
		}
	}

	return failed
}

// WriteScanReport writes the report as YAML to path.
func WriteScanReport(path string, report ScanReport) error {
	// Marshal the struct to YAML
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal scan report to YAML: %w", err)
	}

	// Write the YAML data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scan report to file: %w", err)
	}

	return nil
}
