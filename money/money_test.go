package money_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/innovareegautomation-dev/Nomina-Innovart/money"
)

func TestFormat_MXN(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4411.72, "$4,411.72"},
		{0, "$0.00"},
		{1375.78, "$1,375.78"},
		{1234567.5, "$1,234,567.50"},
		{187.5, "$187.50"},
	}
	for _, tc := range cases {
		if got := money.Format(decimal.NewFromFloat(tc.in)); got != tc.want {
			t.Errorf("Format(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatFloat_NonFiniteRendersZero(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := money.FormatFloat(f); got != "$0.00" {
			t.Errorf("FormatFloat(%v): got %q, want $0.00", f, got)
		}
	}
}

func TestPlain_FixedTwoDigits(t *testing.T) {
	if got := money.Plain(decimal.NewFromFloat(4411.7)); got != "4411.70" {
		t.Errorf("got %q", got)
	}
	if got := money.Plain(decimal.NewFromFloat(0.005)); got != "0.01" {
		t.Errorf("rounding: got %q", got)
	}
}
