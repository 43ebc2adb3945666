package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicer/internal/models"
)

var hundred = decimal.NewFromInt(100)

// MaxExponent bounds the decimal exponent kept exactly. Text like
// "1e-100000000" would otherwise make every later Add rescale to a
// hundred-million-digit integer.
const MaxExponent = 30

// Totals holds the derived amounts of an invoice. They are never stored;
// recompute them from the invoice whenever they are needed.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// CoerceNumeric converts user-entered text into a number.
// Surrounding whitespace is ignored and a single leading '+' is accepted.
// Empty or unparsable text (including NaN and Infinity) becomes zero, so a
// malformed field can never poison the displayed totals.
func CoerceNumeric(text models.NumericText) decimal.Decimal {
	s := strings.TrimSpace(string(text))
	if strings.HasPrefix(s, "+") {
		s = s[1:]
		if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
			return decimal.Zero
		}
	}
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp < -MaxExponent || exp > MaxExponent {
		return coerceFloat(s)
	}
	return d
}

// coerceFloat parses s as a float64. Out-of-range values become zero, as do
// underflows, which round to zero anyway.
func coerceFloat(s string) decimal.Decimal {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// LineAmount returns quantity × unit price for a single item.
func LineAmount(item models.LineItem) decimal.Decimal {
	return CoerceNumeric(item.Quantity).Mul(CoerceNumeric(item.UnitPrice))
}

// ComputeTotals derives subtotal, tax and total for an invoice.
//
//	subtotal  = Σ quantity × unitPrice
//	taxAmount = subtotal × taxPercent / 100
//	total     = subtotal + taxAmount − discountAmount
//
// Amounts are accumulated at full precision; nothing is clamped, so negative
// subtotals and totals are returned as-is.
func ComputeTotals(inv models.Invoice) Totals {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(LineAmount(item))
	}

	tax := subtotal.Mul(CoerceNumeric(inv.TaxPercent)).Div(hundred)
	total := subtotal.Add(tax).Sub(CoerceNumeric(inv.DiscountAmount))

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     total,
	}
}

// Rounded returns the totals rounded half away from zero to two decimal places
// for presentation.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:  t.Subtotal.Round(2),
		TaxAmount: t.TaxAmount.Round(2),
		Total:     t.Total.Round(2),
	}
}

// IsNegative reports whether the amount due is below zero.
func (t Totals) IsNegative() bool {
	return t.Total.IsNegative()
}
