package models

// DefaultThemeColor is used when no theme color has been saved.
const DefaultThemeColor = "#3b82f6"

// DefaultBillFrom is the issuer shown on new invoices until the user saves
// their own details.
var DefaultBillFrom = PartyInfo{
	Name:    "Your Company",
	Email:   "your@company.com",
	Address: "123 Main St, City, Country",
}

// Preferences are user settings that outlive any single invoice.
type Preferences struct {
	// DefaultBillFrom prefills the issuer of new invoices. It tracks the
	// bill-from of the most recently saved invoice.
	DefaultBillFrom PartyInfo `json:"defaultBillFrom"`

	// CompanyLogo prefills the logo of new invoices (data URI, may be empty).
	CompanyLogo string `json:"companyLogo,omitempty"`

	// ThemeColor is a CSS color string.
	ThemeColor string `json:"themeColor"`

	DarkMode bool `json:"darkMode"`
}
