package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type BacktestTypesTestSuite struct {
	suite.Suite
}

func TestBacktestTypesSuite(t *testing.T) {
	suite.Run(t, new(BacktestTypesTestSuite))
}

func (suite *BacktestTypesTestSuite) TestWriteScanReport() {
	path := filepath.Join(suite.T().TempDir(), "report.yaml")
	report := ScanReport{
		Generation: 3,
		Universe:   2,
		Records: []ScanRecord{
			{Symbol: "SYM_A", Result: BacktestResult{Symbol: "SYM_A", ReturnPercent: 2.1}, Profitable: true},
			{Symbol: "SYM_B", Error: "no data", Profitable: false},
		},
		Candidates: []string{"SYM_A"},
	}

	suite.Require().NoError(WriteScanReport(path, report))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var decoded ScanReport
	suite.Require().NoError(yaml.Unmarshal(data, &decoded))
	suite.Equal(uint64(3), decoded.Generation)
	suite.Equal([]string{"SYM_A"}, decoded.Candidates)
	suite.Equal(2.1, decoded.Records[0].Result.ReturnPercent)
	suite.Equal("no data", decoded.Records[1].Error)
}

func (suite *BacktestTypesTestSuite) TestWriteScanReportBadPath() {
	err := WriteScanReport(filepath.Join(suite.T().TempDir(), "missing", "report.yaml"), ScanReport{})
	suite.Error(err)
}

func (suite *BacktestTypesTestSuite) TestFailedCount() {
	report := ScanReport{
		Records: []ScanRecord{
			{Symbol: "A", Err: os.ErrNotExist},
			{Symbol: "B"},
		},
	}

	suite.Equal(1, report.Failed())
}
