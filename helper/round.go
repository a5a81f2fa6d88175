package helper

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Round scales num by 10^dec, rounds half away from zero and scales back.
// Binary floating point applies: Round(1.005, 2) is 1 because
// 1.005*100 evaluates to 100.49999999999999.
func Round(num float64, dec int) float64 {
	p := math.Pow(10, float64(dec))
	return math.Round(num*p) / p
}

// RoundValue coerces v to a float before rounding. Values that do not
// coerce yield NaN.
func RoundValue(v any, dec int) float64 {
	num, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return Round(num, dec)
}

// RoundDecimal rounds the shortest decimal form of num, so
// RoundDecimal(1.005, 2) is 1.01.
func RoundDecimal(num float64, dec int32) float64 {
	return decimal.NewFromFloat(num).Round(dec).InexactFloat64()
}

func RoundToNearest(num, nearest float64) float64 {
	if nearest == 0 {
		return math.NaN()
	}
	return nearest * math.Round(num/nearest)
}

func FloorToNearest(num, nearest float64) float64 {
	if nearest == 0 {
		return math.NaN()
	}
	return nearest * math.Floor(num/nearest)
}
