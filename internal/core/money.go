// Package core holds TabScape's domain types and the pure planning,
// forecasting, and splitting computations that operate on them.
//
// Monetary values are decimal amounts in the user's configured currency.
// Computation boundaries round to two decimals with Round2; the split
// calculator works in cents internally to avoid drift.
package core

import "math"

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// toCents converts a decimal amount to integer cents, rounding half away
// from zero.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// fromCents converts integer cents back to a decimal amount.
func fromCents(c int64) float64 {
	return float64(c) / 100
}
