// Package format turns calculator values into the strings shown on an
// invoice. Rounding to two decimals happens here and nowhere earlier.
package format

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicer/internal/calculator"
	"github.com/mmynk/invoicer/internal/models"
)

// Money formats amount as symbol + grouped value with two decimals, e.g.
// "$1,234.50". Negative amounts keep their sign in front of the symbol.
func Money(symbol string, amount decimal.Decimal) string {
	rounded := amount.Round(2)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + symbol + Amount(rounded)
}

// Amount formats a value with thousands separators and two decimals, without
// a currency symbol.
func Amount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	whole := rounded.Truncate(0)
	frac := rounded.Sub(whole).Abs().StringFixed(2) // "0.xx"

	grouped := groupThousands(whole.Abs().String())
	if rounded.IsNegative() {
		grouped = "-" + grouped
	}
	return grouped + frac[1:]
}

// groupThousands inserts commas into a string of digits. Amounts are not
// bounded by int64, so this works on the decimal text.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Quantity shows a quantity without trailing zeros ("2", "1.5"). Text that is
// not a number is shown as typed.
func Quantity(q models.NumericText) string {
	s := strings.TrimSpace(q.String())
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return s
	}
	if exp := d.Exponent(); exp < -calculator.MaxExponent || exp > calculator.MaxExponent {
		return s
	}
	return d.String()
}

// Percent formats a tax rate for labels, e.g. "10%" or "7.5%".
func Percent(p decimal.Decimal) string {
	return p.String() + "%"
}
