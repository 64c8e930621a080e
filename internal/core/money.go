// Package core holds the credit report domain model.
//
// Money values arrive from the host as float64. Everything shown to a user
// goes through shopspring/decimal so that rounding is applied to the
// shortest decimal representation of the float, not its binary expansion.
package core

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ProfitDecimals is the number of fractional digits shown for amounts.
const ProfitDecimals = 2

// FormatProfit renders v with exactly two fractional digits, rounding half
// away from zero.
//
// Examples:
//
//	FormatProfit(100.005) -> "100.01"
//	FormatProfit(-100.005) -> "-100.01"
//	FormatProfit(2.675) -> "2.68"
//	FormatProfit(0) -> "0.00"
//
// NaN and infinities have no decimal form and render as "NaN", "+Inf" or
// "-Inf".
func FormatProfit(v float64) string {
	if !IsFinite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return FormatDecimal(decimal.NewFromFloat(v))
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatDecimal applies the FormatProfit rule to an already exact value.
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(ProfitDecimals)
}
