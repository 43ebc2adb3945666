package models

// Status is the payment state of an invoice.
type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Currency is a display label for amounts. No exchange rates are involved.
type Currency struct {
	// Code is an ISO 4217 code, unique within the catalog (e.g., "USD").
	Code string `json:"code"`

	// Symbol is the prefix shown in front of amounts (e.g., "$").
	Symbol string `json:"symbol"`
}

// PartyInfo describes either the issuer or the recipient of an invoice.
// Fields are free text; the email is not validated.
type PartyInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// LineItem represents a single billable row on an invoice.
type LineItem struct {
	// ID is assigned when the row is created and never reused.
	// Position in Invoice.Items is not identity; this is.
	ID string `json:"id"`

	// Description of the goods or service (e.g., "Website redesign").
	Description string `json:"description"`

	// Quantity as typed by the user. May be fractional or not a number at all.
	Quantity NumericText `json:"quantity"`

	// UnitPrice as typed by the user, in the invoice currency.
	UnitPrice NumericText `json:"unitPrice"`
}

// Invoice is the full document being authored.
type Invoice struct {
	// ID is empty until the invoice is first saved. Once assigned it is
	// stable until the invoice is deleted.
	ID string `json:"id,omitempty"`

	// Logo is an optional data-URI image.
	Logo string `json:"logo,omitempty"`

	InvoiceNumber string `json:"invoiceNumber"`

	// IssueDate and DueDate are ISO 8601 calendar dates (YYYY-MM-DD).
	IssueDate string `json:"issueDate"`
	DueDate   string `json:"dueDate"`

	BillFrom PartyInfo `json:"billFrom"`
	BillTo   PartyInfo `json:"billTo"`

	// Items are kept in display order.
	Items []LineItem `json:"items"`

	// TaxPercent is a flat percentage applied to the subtotal.
	TaxPercent NumericText `json:"taxPercent"`

	// DiscountAmount is an absolute amount subtracted after tax.
	DiscountAmount NumericText `json:"discountAmount"`

	Notes    string   `json:"notes"`
	Status   Status   `json:"status"`
	Currency Currency `json:"currency"`
}

// IsSaved reports whether the invoice has been assigned an ID by a save.
func (inv Invoice) IsSaved() bool {
	return inv.ID != ""
}

// Clone returns a copy of the invoice that shares no mutable state with inv.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.Items != nil {
		out.Items = make([]LineItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	return out
}

// ItemIndex returns the position of the item with the given ID, or -1.
func (inv Invoice) ItemIndex(itemID string) int {
	for i := range inv.Items {
		if inv.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
