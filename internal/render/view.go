// Package render turns an invoice into a View: every value as it is
// displayed, plus the HTML document handed to the document renderer.
package render

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicer/internal/calculator"
	"github.com/mmynk/invoicer/internal/currency"
	"github.com/mmynk/invoicer/internal/format"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/qr"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Options supply what the invoice itself does not carry.
type Options struct {
	Payment    qr.Payment
	QREndpoint string
}

// Row is one displayed line item.
type Row struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// View is a read-only snapshot of an invoice ready for display.
type View struct {
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	Status        models.Status
	Logo          string

	BillFrom models.PartyInfo
	BillTo   models.PartyInfo

	Rows []Row

	Currency  models.Currency
	Subtotal  string
	TaxLabel  string
	TaxAmount string
	Discount  string
	Total     string

	// TotalAmount is the unrounded total, kept for payment payloads.
	TotalAmount decimal.Decimal

	// NegativeTotal flags a total below zero. It is shown, never hidden.
	NegativeTotal bool

	Notes      string
	ThemeColor string
	DarkMode   bool

	// QR is nil when no bank details are configured.
	QR *qr.Code
}

// Build computes the view of inv.
func Build(inv models.Invoice, prefs models.Preferences, opts Options) *View {
	cur := currency.Resolve(inv.Currency)
	totals := calculator.ComputeTotals(inv)

	v := &View{
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		Logo:          inv.Logo,
		BillFrom:      inv.BillFrom,
		BillTo:        inv.BillTo,
		Rows:          make([]Row, 0, len(inv.Items)),
		Currency:      cur,
		Subtotal:      format.Money(cur.Symbol, totals.Subtotal),
		TaxLabel:      "Tax (" + format.Percent(calculator.CoerceNumeric(inv.TaxPercent)) + ")",
		TaxAmount:     format.Money(cur.Symbol, totals.TaxAmount),
		Discount:      format.Money(cur.Symbol, calculator.CoerceNumeric(inv.DiscountAmount)),
		Total:         format.Money(cur.Symbol, totals.Total),
		TotalAmount:   totals.Total,
		NegativeTotal: totals.IsNegative(),
		Notes:         inv.Notes,
		ThemeColor:    SanitizeColor(prefs.ThemeColor),
		DarkMode:      prefs.DarkMode,
	}

	for _, item := range inv.Items {
		v.Rows = append(v.Rows, Row{
			Description: item.Description,
			Quantity:    format.Quantity(item.Quantity),
			UnitPrice:   format.Money(cur.Symbol, calculator.CoerceNumeric(item.UnitPrice)),
			Amount:      format.Money(cur.Symbol, calculator.LineAmount(item)),
		})
	}

	if !opts.Payment.IsZero() {
		payment := opts.Payment
		if payment.CompanyName == "" {
			payment.CompanyName = inv.BillFrom.Name
		}
		code := qr.Build(opts.QREndpoint, payment, cur.Symbol, totals.Total)
		v.QR = &code
	}

	return v
}

// SanitizeColor returns value when it is a hex color and the default theme
// color otherwise, so user input never reaches CSS unchecked.
func SanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return models.DefaultThemeColor
}
