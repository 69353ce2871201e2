package engine

import "github.com/shopspring/decimal"

// Round rounds an amount to whole local-currency units, half away from zero.
// Going through decimal keeps values like 2.5 from drifting on binary
// representation before rounding.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(0).Float64()
	return f
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func percent(rate float64) float64 {
	return rate / 100
}
