package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Total is the accumulated profit of credit operations in one currency.
type Total struct {
	Currency string          `json:"currency"`
	Profit   decimal.Decimal `json:"profit"`
}

// Totals maps currency to accumulated profit. Entries are created on first
// use and never removed.
type Totals map[string]decimal.Decimal

func NewTotals() Totals {
	return make(Totals)
}

// Add accumulates profit under currency. Non-finite profits are not added
// and Add returns false.
func (t Totals) Add(currency string, profit float64) bool {
	if !IsFinite(profit) {
		return false
	}
	t[currency] = t[currency].Add(decimal.NewFromFloat(profit))
	return true
}

func (t Totals) Get(currency string) (decimal.Decimal, bool) {
	d, ok := t[currency]
	return d, ok
}

func (t Totals) Len() int {
	return len(t)
}

// Sorted returns the totals ordered by currency code.
func (t Totals) Sorted() []Total {
	out := make([]Total, 0, len(t))
	for cur, profit := range t {
		out = append(out, Total{Currency: cur, Profit: profit})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}
