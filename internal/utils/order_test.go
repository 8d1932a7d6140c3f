package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestRoundToDecimalPrecision() {
	tests := []struct {
		name      string
		value     float64
		precision int
		expected  float64
	}{
		{name: "round down", value: 98.0149, precision: 2, expected: 98.01},
		{name: "round half up", value: 98.015, precision: 2, expected: 98.02},
		{name: "float noise", value: 98.00999999999999, precision: 2, expected: 98.01},
		{name: "zero decimals", value: 12.6, precision: 0, expected: 13},
		{name: "quantity precision", value: 0.0505050505, precision: 3, expected: 0.051},
		{name: "negative", value: -1.005, precision: 2, expected: -1.01},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, RoundToDecimalPrecision(tc.value, tc.precision))
		})
	}
}

func (suite *UtilsTestSuite) TestRoundingIsIdempotent() {
	values := []float64{0.1, 98.00999999999999, 101.97, 3.14159265, 12345.678901, 0.00051}

	for _, value := range values {
		for precision := 0; precision <= 8; precision++ {
			once := RoundToDecimalPrecision(value, precision)
			twice := RoundToDecimalPrecision(once, precision)
			suite.Equal(once, twice, "value %v precision %d", value, precision)
		}
	}
}

func (suite *UtilsTestSuite) TestFormatDecimal() {
	suite.Equal("99.00", FormatDecimal(99, 2))
	suite.Equal("0.051", FormatDecimal(0.051, 3))
	suite.Equal("5", FormatDecimal(5, 0))
}

func (suite *UtilsTestSuite) TestAdjustByPercent() {
	suite.Equal(99.0, AdjustByPercent(100, -1))
	suite.Equal(98.01, AdjustByPercent(99, -1))
	suite.Equal(101.97, AdjustByPercent(99, 3))
	suite.Equal(100.02, AdjustByPercent(100, 0.02))
}

func (suite *UtilsTestSuite) TestCalculateOrderQuantity() {
	suite.Equal(0.05, CalculateOrderQuantity(5, 100, 3))
	suite.Equal(0.0, CalculateOrderQuantity(5, 100000, 3), "rounds to zero")
	suite.Equal(0.0, CalculateOrderQuantity(5, 0, 3))
	suite.Equal(2.0, CalculateOrderQuantity(5, 2.5, 0))
}

func (suite *UtilsTestSuite) TestRequiredMargin() {
	suite.Equal(2.5, RequiredMargin(5, 2))
	suite.Equal(5.0, RequiredMargin(5, 1))
	suite.Equal(5.0, RequiredMargin(5, 0))
}
