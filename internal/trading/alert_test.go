package trading

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rxtech-lab/trendscout/internal/logger"
	"github.com/rxtech-lab/trendscout/internal/metrics"
	tserrors "github.com/rxtech-lab/trendscout/pkg/errors"
)

type AlertTestSuite struct {
	suite.Suite
}

func TestAlertSuite(t *testing.T) {
	suite.Run(t, new(AlertTestSuite))
}

func (suite *AlertTestSuite) TestLogAlertSinkLogsAndCounts() {
	core, logs := observer.New(zapcore.DebugLevel)
	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	suite.Require().NoError(err)

	sink := NewLogAlertSink(&logger.Logger{Logger: zap.New(core)}, recorder)
	sink.Critical(context.Background(), &tserrors.UnprotectedPositionError{
		Symbol:       "SYM_A",
		AttemptID:    "attempt",
		EntryOrderID: "1001",
		FailedLeg:    "STOP_LOSS",
		Cause:        errors.New("rejected"),
	})

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	suite.Require().Len(entries, 1)

	fields := entries[0].ContextMap()
	suite.Equal("SYM_A", fields["symbol"])
	suite.Equal("1001", fields["entry_order_id"])
	suite.Equal("STOP_LOSS", fields["failed_leg"])
	suite.Equal("alert", fields["component"])
	suite.Equal("rejected", fields["error"])

	expected := `
# HELP trendscout_critical_alerts_total Positions left without full stop-loss and take-profit protection.
# TYPE trendscout_critical_alerts_total counter
trendscout_critical_alerts_total 1
`
	suite.NoError(testutil.GatherAndCompare(registry, strings.NewReader(expected), "trendscout_critical_alerts_total"))
}

func (suite *AlertTestSuite) TestLogAlertSinkWithoutRecorder() {
	sink := NewLogAlertSink(logger.NewNop(), nil)
	suite.NotPanics(func() {
		sink.Critical(context.Background(), &tserrors.UnprotectedPositionError{Symbol: "SYM_A"})
	})
}
