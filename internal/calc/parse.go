// Package calc implements the stock-reconciliation core of a medição:
// numeric input parsing, per-row derivation of sold/replenished/withdrawn
// quantities, and the aggregation of rows into category and grand totals.
// Everything here is pure arithmetic over already-sanitized input — no I/O,
// no errors escape this package.
package calc

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumero converts locale-formatted free-text input into a number.
// The first comma is treated as the decimal separator ("12,5" → 12.5).
// Empty strings, garbage text and multiple separators all degrade to zero —
// this function never fails. It is the universal guard at every numeric
// input boundary: downstream computations assume their inputs passed
// through here and are therefore always finite.
func ParseNumero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.Replace(s, ",", ".", 1)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// FormatarNumero renders a parsed quantity back to its shortest exact text
// form (ParseNumero(FormatarNumero(x)) == x).
func FormatarNumero(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
