// Package currency provides the fixed catalog of currencies an invoice can be
// labeled with. Currencies are display-only; nothing is converted.
package currency

import (
	"fmt"

	"golang.org/x/text/currency"

	"github.com/mmynk/invoicer/internal/models"
)

// catalog is ordered; the first entry is the default.
var catalog = []models.Currency{
	{Code: "USD", Symbol: "$"},
	{Code: "EUR", Symbol: "€"},
	{Code: "GBP", Symbol: "£"},
	{Code: "INR", Symbol: "₹"},
	{Code: "JPY", Symbol: "¥"},
	{Code: "CAD", Symbol: "C$"},
	{Code: "AUD", Symbol: "A$"},
	{Code: "CHF", Symbol: "CHF"},
	{Code: "CNY", Symbol: "¥"},
	{Code: "NGN", Symbol: "₦"},
	{Code: "KES", Symbol: "KSh"},
	{Code: "ZAR", Symbol: "R"},
}

func init() {
	seen := make(map[string]bool, len(catalog))
	for _, c := range catalog {
		if _, err := currency.ParseISO(c.Code); err != nil {
			panic(fmt.Sprintf("currency catalog: invalid ISO 4217 code %q: %v", c.Code, err))
		}
		if seen[c.Code] {
			panic(fmt.Sprintf("currency catalog: duplicate code %q", c.Code))
		}
		seen[c.Code] = true
	}
}

// All returns the catalog in display order.
func All() []models.Currency {
	out := make([]models.Currency, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the first catalog entry.
func Default() models.Currency {
	return catalog[0]
}

// Lookup finds a currency by code.
func Lookup(code string) (models.Currency, bool) {
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return models.Currency{}, false
}

// Resolve returns the catalog entry for c.Code, falling back to the default
// when the code is unknown. Used when loading invoices saved by older builds.
func Resolve(c models.Currency) models.Currency {
	if found, ok := Lookup(c.Code); ok {
		return found
	}
	return Default()
}
