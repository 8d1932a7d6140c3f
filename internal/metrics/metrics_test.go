package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
	registry *prometheus.Registry
	recorder *Recorder
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) SetupTest() {
	suite.registry = prometheus.NewRegistry()

	recorder, err := NewRecorder(suite.registry)
	suite.Require().NoError(err)

	suite.recorder = recorder
}

func (suite *MetricsTestSuite) TestCounters() {
	suite.recorder.ScanPass()
	suite.recorder.ScanSymbol(ScanProfitable)
	suite.recorder.ScanSymbol(ScanFailed)
	suite.recorder.ScanSymbol(ScanFailed)
	suite.recorder.Candidates(3)
	suite.recorder.Evaluation("placed")
	suite.recorder.OrderLeg("ENTRY", "ACCEPTED")
	suite.recorder.Bracket("PROTECTED")
	suite.recorder.CriticalAlert()

	suite.InDelta(1, testutil.ToFloat64(suite.recorder.scanPasses), 0)
	suite.InDelta(2, testutil.ToFloat64(suite.recorder.scanSymbols.WithLabelValues(ScanFailed)), 0)
	suite.InDelta(3, testutil.ToFloat64(suite.recorder.candidates), 0)
	suite.InDelta(1, testutil.ToFloat64(suite.recorder.evaluations.WithLabelValues("placed")), 0)
	suite.InDelta(1, testutil.ToFloat64(suite.recorder.orderLegs.WithLabelValues("ENTRY", "ACCEPTED")), 0)
	suite.InDelta(1, testutil.ToFloat64(suite.recorder.brackets.WithLabelValues("PROTECTED")), 0)
	suite.InDelta(1, testutil.ToFloat64(suite.recorder.criticalAlerts), 0)
}

func (suite *MetricsTestSuite) TestNames() {
	suite.recorder.ScanSymbol(ScanProfitable)
	suite.recorder.Evaluation("skipped_cooldown")
	suite.recorder.OrderLeg("ENTRY", "ACCEPTED")
	suite.recorder.Bracket("ABANDONED")

	count, err := testutil.GatherAndCount(suite.registry,
		"trendscout_scan_passes_total",
		"trendscout_scan_symbols_total",
		"trendscout_candidates",
		"trendscout_evaluations_total",
		"trendscout_order_legs_total",
		"trendscout_brackets_total",
		"trendscout_critical_alerts_total",
	)
	suite.NoError(err)
	suite.Equal(7, count)
}

func (suite *MetricsTestSuite) TestDuplicateRegistrationFails() {
	_, err := NewRecorder(suite.registry)
	suite.Error(err)
}

func (suite *MetricsTestSuite) TestNilRecorder() {
	var recorder *Recorder

	suite.NotPanics(func() {
		recorder.ScanPass()
		recorder.ScanSymbol(ScanFailed)
		recorder.Candidates(1)
		recorder.Evaluation("placed")
		recorder.OrderLeg("ENTRY", "REJECTED")
		recorder.Bracket("ABANDONED")
		recorder.CriticalAlert()
	})
}

func (suite *MetricsTestSuite) TestRouter() {
	suite.recorder.CriticalAlert()

	server := httptest.NewServer(NewRouter(suite.registry))
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	suite.Require().NoError(err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("ok", string(body))

	resp, err = http.Get(server.URL + "/metrics")
	suite.Require().NoError(err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.True(strings.Contains(string(body), "trendscout_critical_alerts_total 1"))

	resp, err = http.Get(server.URL + "/unknown")
	suite.Require().NoError(err)
	resp.Body.Close()
	suite.Equal(http.StatusNotFound, resp.StatusCode)
}
