package models

import "github.com/shopspring/decimal"

// Importing models switches every decimal.Decimal in the process to marshal
// as a bare JSON number, not only the ones in this package. The backend
// reads prices as numbers and the storefront API promises numbers too.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MoneyAsJSONNumber reports the process-wide decimal encoding set above.
func MoneyAsJSONNumber() bool {
	return decimal.MarshalJSONWithoutQuotes
}

// DisplayPrice rounds to the two places shown to shoppers.
func DisplayPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
