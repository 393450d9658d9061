// Package tax implements the progressive tax calculation shared by the HTTP
// route and any embedded caller. It is pure: no state, no side effects.
package tax

import (
	"errors"
	"math"
)

// ErrNegativeIncome is returned when income is below zero.
var ErrNegativeIncome = errors.New("income must be non-negative")

// TypeFederal selects the progressive bracket table. Any other tax type
// falls back to a flat 5% rate.
const TypeFederal = "federal"

const flatFallbackRate = 0.05

// bracket is one row of the 2022 federal table. Base is the cumulative tax
// owed at the bracket's lower bound, so the marginal rate applies only to the
// portion of income inside the bracket.
type bracket struct {
	upper float64
	rate  float64
	base  float64
	lower float64
}

var federalBrackets = []bracket{
	{upper: 10275, rate: 0.10, base: 0, lower: 0},
	{upper: 41775, rate: 0.12, base: 1027.50, lower: 10275},
	{upper: 89075, rate: 0.22, base: 4807.50, lower: 41775},
	{upper: 170050, rate: 0.24, base: 15213.50, lower: 89075},
	{upper: 215950, rate: 0.32, base: 34647.50, lower: 170050},
	{upper: 539900, rate: 0.35, base: 49335.50, lower: 215950},
	{upper: math.Inf(1), rate: 0.37, base: 162718.00, lower: 539900},
}

// Result holds the computed tax and the effective rate as a percentage.
type Result struct {
	Tax           float64
	EffectiveRate float64
}

// Calculate computes the tax owed on income for the given tax type.
// Both result values are rounded to two decimal places.
func Calculate(income float64, taxType string) (Result, error) {
	if income < 0 {
		return Result{}, ErrNegativeIncome
	}

	var tax float64
	if taxType == TypeFederal {
		for _, b := range federalBrackets {
			if income <= b.upper {
				tax = b.base + (income-b.lower)*b.rate
				break
			}
		}
	} else {
		tax = income * flatFallbackRate
	}

	var effectiveRate float64
	if income > 0 {
		effectiveRate = tax / income * 100
	}

	return Result{
		Tax:           round2(tax),
		EffectiveRate: round2(effectiveRate),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
