// Package calc holds the leaf tax computations. Every function is pure: values
// in, values out, no configuration lookups and no logging.
package calc

import "github.com/shopspring/decimal"

// RoundCents rounds half away from zero to two decimal places.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundDollars rounds half away from zero to a whole dollar.
func RoundDollars(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
