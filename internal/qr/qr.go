// Package qr builds the payment QR code shown next to the invoice totals.
// The image itself comes from an external generation endpoint; this package
// only composes the text it encodes and the request URL.
package qr

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicer/internal/format"
)

// DefaultEndpoint returns a 150x150 PNG for the text appended to it.
const DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data="

// Payment holds the issuer's bank details.
type Payment struct {
	CompanyName   string
	AccountNumber string
	BankName      string
	SwiftIBAN     string
}

// IsZero reports whether no bank detail is configured.
func (p Payment) IsZero() bool {
	return p.AccountNumber == "" && p.BankName == "" && p.SwiftIBAN == ""
}

// Code is a composed QR payload.
type Code struct {
	Payload string
	URL     string
}

// Build composes the labeled payload for amount and the image URL for it.
// Empty fields are left out. An empty endpoint uses DefaultEndpoint.
func Build(endpoint string, p Payment, symbol string, amount decimal.Decimal) Code {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	lines := make([]string, 0, 5)
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, label+": "+value)
		}
	}
	add("Company", p.CompanyName)
	add("Account", p.AccountNumber)
	add("Bank", p.BankName)
	add("SWIFT/IBAN", p.SwiftIBAN)
	add("Amount", format.Money(symbol, amount))

	payload := strings.Join(lines, "\n")
	return Code{
		Payload: payload,
		URL:     endpoint + url.QueryEscape(payload),
	}
}
