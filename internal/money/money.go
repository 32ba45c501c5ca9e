// Package money holds the rounding rules shared by the pricing engine and its exports.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds v to cents, half away from zero. Non-finite values round to 0.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Format renders v with exactly two decimals, e.g. 2244 -> "2244.00".
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// RoundHalfUp rounds v to the nearest integer with halves rounded toward +Inf.
func RoundHalfUp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Floor(v + 0.5)
}

// Ratio returns num/den, or 0 when den is zero or the result is not finite.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
