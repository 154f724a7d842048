package formatter

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatGBP formats an amount as pounds with pence and comma thousands
// separators, e.g. "£12,500.00" or "-£3.10".
func FormatGBP(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, pence, _ := strings.Cut(s, ".")
	neg := amount.Round(2).IsNegative()

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + £ + pence
	b.Grow(len(whole) + len(whole)/3 + 5)
	if neg {
		b.WriteString("-")
	}
	b.WriteString("£")

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(pence)
	return b.String()
}

// FormatOptionalGBP formats amount, or "n/a" when it is undefined.
func FormatOptionalGBP(amount *decimal.Decimal) string {
	if amount == nil {
		return "n/a"
	}
	return FormatGBP(*amount)
}
