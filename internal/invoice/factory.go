// Package invoice creates new invoices and implements the line-item editing
// operations. Every operation is a pure transform: the input invoice is left
// untouched and the caller assigns the returned value back.
package invoice

import (
	"fmt"
	"sync"
	"time"

	"github.com/mmynk/invoicer/internal/currency"
	"github.com/mmynk/invoicer/internal/ids"
	"github.com/mmynk/invoicer/internal/models"
)

const (
	// DateLayout is the ISO 8601 calendar date format used for issue and due dates.
	DateLayout = "2006-01-02"

	// PaymentTermDays is the gap between issue date and due date of a new invoice.
	PaymentTermDays = 15

	// DefaultNotes prefills the notes of a new invoice.
	DefaultNotes = "Grateful for your business, Your timely payment means a lot!"
)

// Defaults carry the user's saved details that prefill a new invoice.
type Defaults struct {
	BillFrom models.PartyInfo
	Logo     string
}

// Factory stamps out fresh, unsaved invoices.
type Factory struct {
	ids ids.Generator
	now func() time.Time

	mu          sync.Mutex
	lastCounter int64
}

// NewFactory creates a Factory. now defaults to time.Now when nil.
func NewFactory(gen ids.Generator, now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{ids: gen, now: now}
}

// New returns an unsaved invoice issued today and due in PaymentTermDays,
// with a single empty line item.
func (f *Factory) New(d Defaults) models.Invoice {
	today := f.now().UTC()

	billFrom := d.BillFrom
	if billFrom == (models.PartyInfo{}) {
		billFrom = models.DefaultBillFrom
	}

	return models.Invoice{
		Logo:           d.Logo,
		InvoiceNumber:  f.nextNumber(today),
		IssueDate:      today.Format(DateLayout),
		DueDate:        today.AddDate(0, 0, PaymentTermDays).Format(DateLayout),
		BillFrom:       billFrom,
		Items:          []models.LineItem{newItem(f.ids)},
		TaxPercent:     "0",
		DiscountAmount: "0",
		Notes:          DefaultNotes,
		Status:         models.StatusUnpaid,
		Currency:       currency.Default(),
	}
}

// nextNumber formats "INV-" plus the last six digits of a millisecond
// counter. The counter never repeats within a process, even when two invoices
// are created in the same millisecond.
func (f *Factory) nextNumber(now time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	counter := now.UnixMilli()
	if counter <= f.lastCounter {
		counter = f.lastCounter + 1
	}
	f.lastCounter = counter

	return fmt.Sprintf("INV-%06d", counter%1_000_000)
}

func newItem(gen ids.Generator) models.LineItem {
	return models.LineItem{
		ID:          gen.ItemID(),
		Description: "",
		Quantity:    "1",
		UnitPrice:   "0",
	}
}
