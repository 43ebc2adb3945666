package qr

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	p := Payment{
		CompanyName:   "Acme Ltd",
		AccountNumber: "12345678",
		BankName:      "First Bank",
		SwiftIBAN:     "GB29NWBK60161331926819",
	}

	code := Build("", p, "$", decimal.RequireFromString("132.5"))

	assert.Equal(t, "Company: Acme Ltd\nAccount: 12345678\nBank: First Bank\nSWIFT/IBAN: GB29NWBK60161331926819\nAmount: $132.50", code.Payload)
	require.True(t, strings.HasPrefix(code.URL, DefaultEndpoint))

	u, err := url.Parse(code.URL)
	require.NoError(t, err)
	assert.Equal(t, code.Payload, u.Query().Get("data"))
	assert.Equal(t, "150x150", u.Query().Get("size"))
}

func TestBuild_OmitsEmptyFields(t *testing.T) {
	code := Build("https://qr.example/?d=", Payment{CompanyName: "Acme"}, "€", decimal.Zero)

	assert.Equal(t, "Company: Acme\nAmount: €0.00", code.Payload)
	assert.True(t, strings.HasPrefix(code.URL, "https://qr.example/?d="))
}

func TestPayment_IsZero(t *testing.T) {
	assert.True(t, Payment{}.IsZero())
	assert.True(t, Payment{CompanyName: "Acme"}.IsZero())
	assert.False(t, Payment{AccountNumber: "1"}.IsZero())
}
