// Package currency formats monetary amounts for display.
//
// Amounts are plain decimals everywhere in the ledger; the currency is a
// presentation concern resolved at render time from the user's profile.
package currency

import (
	"fmt"
	"math"
	"sort"
)

// Formatter renders an amount with a currency code, always two decimals.
type Formatter func(amount float64, code string) string

// Symbols maps supported currency codes to their display symbol.
var Symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF",
	"MXN": "MX$",
}

// Codes returns the supported currency codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(Symbols))
	for code := range Symbols {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Format renders amount with the symbol for code, falling back to a
// "CODE " prefix for unknown codes. Non-finite amounts render as 0.00.
func Format(amount float64, code string) string {
	symbol, ok := Symbols[code]
	if !ok {
		symbol = code + " "
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
