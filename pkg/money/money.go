// Package money renders minor-unit integer amounts for logs and query
// responses. All validation and storage stay integer-only; decimals exist
// purely at the display edge.
package money

import (
	"fmt"

	"github.com/clearlane/settleledger/pkg/enums"
	"github.com/shopspring/decimal"
)

// Format renders a minor-unit amount in the currency's major unit, e.g.
// Format(100000, "USD") == "1000.00 USD" and Format(500, "JPY") == "500 JPY".
func Format(amountMinor int64, currency enums.Currency) string {
	major := decimal.New(amountMinor, -currency.MinorUnits())
	return fmt.Sprintf("%s %s", major.StringFixed(currency.MinorUnits()), currency)
}

// MajorUnits returns the amount as a decimal in major units.
func MajorUnits(amountMinor int64, currency enums.Currency) decimal.Decimal {
	return decimal.New(amountMinor, -currency.MinorUnits())
}
