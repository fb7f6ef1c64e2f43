package services

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProgressPercent is 100 × completed / nominal, or zero when nominal is zero.
// The ratio is kept at full division precision; callers round for display.
func ProgressPercent(completed, nominal decimal.Decimal) decimal.Decimal {
	if nominal.IsZero() {
		return decimal.Zero
	}
	return completed.Mul(hundred).Div(nominal)
}
