package enums

import (
	"fmt"
	"strings"
)

// Currency represents a settlement denomination from the fixed whitelist.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
)

var validCurrencies = []Currency{
	CurrencyUSD,
	CurrencyEUR,
	CurrencyGBP,
	CurrencyJPY,
	CurrencyCAD,
	CurrencyAUD,
	CurrencyCHF,
	CurrencyCNY,
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is on the whitelist.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// MinorUnits returns the number of decimal places of the currency's minor
// unit (2 for most, 0 for JPY).
func (c Currency) MinorUnits() int32 {
	if c == CurrencyJPY {
		return 0
	}
	return 2
}

// ParseCurrency normalizes raw input (trimmed, upper-cased) into a Currency.
func ParseCurrency(value string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validCurrencies {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
