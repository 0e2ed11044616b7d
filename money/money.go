/*
Package money renders monetary amounts for display.

PURPOSE:
  All amounts in this system are Mexican pesos. Formatting is
  presentation-only: stored and aggregated values stay decimal, and
  nothing downstream ever parses a formatted string back.

CONTRACT:
  Two fraction digits, es-MX grouping, "$" prefix. Non-finite floats
  (NaN, Inf) render as zero - the calculator shows a wrong-looking
  $0.00 a human will notice instead of propagating garbage.
*/
package money

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var esMX = message.NewPrinter(language.MustParse("es-MX"))

// Format renders a decimal amount as MXN, e.g. "$4,411.72".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return FormatFloat(f)
}

// FormatFloat renders a float amount as MXN. Non-finite input renders
// as zero.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return esMX.Sprintf("$%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Plain renders a decimal with two fraction digits and no symbol or
// grouping, for machine-read exports.
func Plain(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
