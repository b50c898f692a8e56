package output

import "github.com/shopspring/decimal"

// FormatCurrency formats a decimal as USD with 2 decimals.
// Kept here so it can be reused by multiple formatters and tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercent formats an already-scaled percentage with 1 decimal.
func FormatPercent(v decimal.Decimal) string { return v.StringFixed(1) + "%" }

// FormatRate formats a [0,1] fraction as a percentage with 1 decimal.
func FormatRate(v decimal.Decimal) string {
	return v.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// FormatCount formats a fractional count with 1 decimal.
func FormatCount(v decimal.Decimal) string { return v.StringFixed(1) }
