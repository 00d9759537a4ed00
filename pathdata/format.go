package pathdata

import (
	"math"
	"strconv"
)

// Precision is the number of decimals kept in emitted numbers.
const Precision = 3

const scale = 1000 // 10^Precision

// Round rounds v to Precision decimals.
func Round(v float64) float64 {
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// CeilRadius returns the smallest multiple of 0.001 that is >= r.
// Float noise below 1e-6 of a step is ignored so that exact values such as
// 8 stay 8. Negative radii become 0.
func CeilRadius(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Ceil(r*scale-1e-6) / scale
}

// Num formats v rounded to Precision decimals without trailing zeros.
func Num(v float64) string {
	return string(AppendNum(nil, v))
}

// AppendNum appends the Num form of v to b.
func AppendNum(b []byte, v float64) []byte {
	return strconv.AppendFloat(b, Round(v), 'f', -1, 64)
}

// Radius formats a radius rounded up to the next 0.001.
func Radius(r float64) string {
	return string(AppendRadius(nil, r))
}

// AppendRadius appends the Radius form of r to b.
func AppendRadius(b []byte, r float64) []byte {
	return strconv.AppendFloat(b, CeilRadius(r), 'f', -1, 64)
}
