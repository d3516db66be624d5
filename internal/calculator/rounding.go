package calculator

import "github.com/shopspring/decimal"

var (
	two     = decimal.NewFromInt(2)
	oneCent = decimal.New(1, -2)
)

// RoundPrice maps a price to the nearest half unit minus one cent, giving endings
// of .49 or .99. Halfway cases round to even, so 0.75 becomes 0.99 and 1.25 becomes 0.99.
func RoundPrice(price float64) float64 {
	halves := decimal.NewFromFloat(price).Mul(two).RoundBank(0)
	return halves.Div(two).Sub(oneCent).InexactFloat64()
}
