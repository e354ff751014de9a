package commerce

import (
	"github.com/shopspring/decimal"
)

// ParseMinorUnits converts a platform decimal amount string (e.g. "199.99")
// into integer minor-currency units (19999). Amounts are parsed with
// fixed-point arithmetic; no floating multiply is involved, so edge values
// like "0.005" round deterministically (half away from zero).
// An empty or unparsable amount yields 0.
func ParseMinorUnits(amount string) int64 {
	if amount == "" {
		return 0
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0
	}
	return d.Shift(2).Round(0).IntPart()
}

// FormatMinorUnits renders integer minor units back into a decimal string
// with two fraction digits: 19999 -> "199.99".
func FormatMinorUnits(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
