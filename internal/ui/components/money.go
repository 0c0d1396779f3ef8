package components

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rupiah formats a whole-rupiah amount with dot thousands separators,
// e.g. "Rp 1.467.280".
func Rupiah(d decimal.Decimal) string {
	digits := d.Round(0).Abs().StringFixed(0)

	var b strings.Builder
	if d.Round(0).IsNegative() {
		b.WriteString("-")
	}
	b.WriteString("Rp ")
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(".")
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
