package payroll

import "github.com/shopspring/decimal"

// FormatMoney renders an amount with the snapshot's currency label, e.g.
// "CAD 20.00". The currency is display text only; no conversion happens.
func FormatMoney(currency string, amount decimal.Decimal) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}

// FormatHours renders hours with two decimals, e.g. "7.50 h".
func FormatHours(hours decimal.Decimal) string {
	return hours.StringFixed(2) + " h"
}
