package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func bar(minute int, close float64) MarketData {
	return MarketData{
		Symbol: "BTCUSDT",
		Time:   time.Date(2024, 1, 1, 0, minute, 0, 0, time.UTC),
		Open:   close,
		High:   close + 1,
		Low:    close - 1,
		Close:  close,
		Volume: 10,
	}
}

func (suite *MarketTestSuite) TestNormalizeSeriesSortsAndDeduplicates() {
	series := []MarketData{bar(10, 3), bar(0, 1), bar(5, 2), bar(5, 2.5)}

	normalized := NormalizeSeries(series)

	suite.Require().Len(normalized, 3)
	suite.Equal(1.0, normalized[0].Close)
	suite.Equal(2.5, normalized[1].Close, "last duplicate wins")
	suite.Equal(3.0, normalized[2].Close)
	// input is not reordered
	suite.Equal(3.0, series[0].Close)
}

func (suite *MarketTestSuite) TestNormalizeSeriesEmpty() {
	suite.Empty(NormalizeSeries(nil))
}

func (suite *MarketTestSuite) TestExtractors() {
	series := []MarketData{bar(0, 10), bar(1, 20)}

	suite.Equal([]float64{10, 20}, Closes(series))
	suite.Equal([]float64{11, 21}, Highs(series))
	suite.Equal([]float64{9, 19}, Lows(series))
}
