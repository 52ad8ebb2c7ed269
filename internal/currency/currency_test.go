package currency

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		amount float64
		code   string
		out    string
	}{
		{15.49, "USD", "$15.49"},
		{0, "USD", "$0.00"},
		{1234.5, "EUR", "€1234.50"},
		{-20, "GBP", "£-20.00"},
		{99.999, "JPY", "¥100.00"},
		{3, "SEK", "SEK 3.00"},
		{math.NaN(), "USD", "$0.00"},
		{math.Inf(1), "USD", "$0.00"},
	}
	for _, tc := range cases {
		if got := Format(tc.amount, tc.code); got != tc.out {
			t.Fatalf("Format(%v, %q) = %q, want %q", tc.amount, tc.code, got, tc.out)
		}
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	if len(codes) != len(Symbols) {
		t.Fatalf("expected %d codes, got %d", len(Symbols), len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
}
