package api

import (
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/notify"
)

// Totals are the derived amounts of an invoice. Amounts are decimal strings
// rounded to two places; the Display fields carry the currency symbol.
type Totals struct {
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"taxAmount"`
	Total     string `json:"total"`

	SubtotalDisplay  string `json:"subtotalDisplay"`
	TaxAmountDisplay string `json:"taxAmountDisplay"`
	TotalDisplay     string `json:"totalDisplay"`

	NegativeTotal bool `json:"negativeTotal"`
}

// State is the whole editor state after a store operation.
type State struct {
	Invoices     []models.Invoice     `json:"invoices"`
	Current      models.Invoice       `json:"current"`
	Totals       Totals               `json:"totals"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

type GetStateRequest struct{}

type CreateInvoiceRequest struct{}

type SaveInvoiceRequest struct {
	Invoice models.Invoice `json:"invoice"`
}

type SelectInvoiceRequest struct {
	ID string `json:"id"`
}

type DeleteInvoiceRequest struct {
	ID string `json:"id"`
}

type DeleteInvoiceResponse struct {
	// Deleted is false when no invoice had the ID.
	Deleted bool  `json:"deleted"`
	State   State `json:"state"`
}

// ClearInvoicesRequest must carry Confirm=true; clearing cannot be undone.
type ClearInvoicesRequest struct {
	Confirm bool `json:"confirm"`
}

// Item operations work on Invoice when set and on the invoice being edited
// otherwise. The result becomes the invoice being edited; nothing is saved.

type AddItemRequest struct {
	Invoice *models.Invoice `json:"invoice,omitempty"`
}

type RemoveItemRequest struct {
	Invoice *models.Invoice `json:"invoice,omitempty"`
	ItemID  string          `json:"itemId"`
}

type UpdateItemRequest struct {
	Invoice *models.Invoice `json:"invoice,omitempty"`
	ItemID  string          `json:"itemId"`
	Field   string          `json:"field"`
	Value   string          `json:"value"`
}

type MoveItemRequest struct {
	Invoice   *models.Invoice `json:"invoice,omitempty"`
	ItemID    string          `json:"itemId"`
	Direction string          `json:"direction"`
}

type ReorderItemRequest struct {
	Invoice   *models.Invoice `json:"invoice,omitempty"`
	FromIndex int             `json:"fromIndex"`
	ToIndex   int             `json:"toIndex"`
}

// ItemResponse answers every item operation.
type ItemResponse struct {
	Invoice models.Invoice `json:"invoice"`
	Totals  Totals         `json:"totals"`
	// Changed is false when the item was not found.
	Changed bool `json:"changed"`
}

type ComputeTotalsRequest struct {
	Invoice models.Invoice `json:"invoice"`
}

type ComputeTotalsResponse struct {
	Totals Totals `json:"totals"`
}

type ListCurrenciesRequest struct{}

type ListCurrenciesResponse struct {
	Currencies []models.Currency `json:"currencies"`
	Default    models.Currency   `json:"default"`
}

type GetPreferencesRequest struct{}

type SavePreferencesRequest struct {
	Preferences models.Preferences `json:"preferences"`
}

type PreferencesResponse struct {
	Preferences  models.Preferences   `json:"preferences"`
	Notification *notify.Notification `json:"notification,omitempty"`
}
