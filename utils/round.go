package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round rounds f to the given number of decimal places, ties to even.
// NaN and infinities are returned unchanged.
func Round(f float64, places int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	v, _ := decimal.NewFromFloat(f).RoundBank(places).Float64()
	if v == 0 {
		return 0 // drop negative zero
	}
	return v
}

// RoundInt rounds f to the nearest integer, ties to even.
func RoundInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.RoundToEven(f))
}

// FormatPercent renders v the way the dashboard shows deltas: the shortest
// decimal form with at least one fractional digit, followed by " %".
func FormatPercent(v float64) string {
	return FormatDecimal(v) + " %"
}

// FormatDecimal renders v in its shortest form, always keeping one fractional digit.
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
