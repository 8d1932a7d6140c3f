package utils

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundToDecimalPrecision rounds value half away from zero to the given number of decimals.
// Rounding an already rounded value returns it unchanged.
func RoundToDecimalPrecision(value float64, decimalPrecision int) float64 {
	return decimal.NewFromFloat(value).Round(int32(decimalPrecision)).InexactFloat64()
}

// FormatDecimal renders value with exactly decimalPrecision decimals for the exchange API.
func FormatDecimal(value float64, decimalPrecision int) string {
	return decimal.NewFromFloat(value).StringFixed(int32(decimalPrecision))
}

// AdjustByPercent returns value * (1 + percent/100) using decimal arithmetic.
// A negative percent moves the value down.
func AdjustByPercent(value float64, percent float64) float64 {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(percent).Div(hundred))

	return decimal.NewFromFloat(value).Mul(factor).InexactFloat64()
}

// CalculateOrderQuantity converts a quote-asset volume into a base quantity rounded to the symbol precision.
func CalculateOrderQuantity(volume float64, price float64, decimalPrecision int) float64 {
	if price <= 0 || volume <= 0 {
		return 0
	}

	quantity := decimal.NewFromFloat(volume).Div(decimal.NewFromFloat(price))

	return quantity.Round(int32(decimalPrecision)).InexactFloat64()
}

// RequiredMargin is the collateral needed to open volume at the given leverage.
func RequiredMargin(volume float64, leverage int) float64 {
	if leverage <= 0 {
		return volume
	}

	return decimal.NewFromFloat(volume).Div(decimal.NewFromInt(int64(leverage))).InexactFloat64()
}
