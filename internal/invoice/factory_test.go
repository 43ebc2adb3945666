package invoice

import (
	"testing"
	"time"

	"github.com/mmynk/invoicer/internal/currency"
	"github.com/mmynk/invoicer/internal/ids"
	"github.com/mmynk/invoicer/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFactoryNew(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	f := NewFactory(&ids.Sequence{}, fixedClock(now))

	first := f.New(Defaults{})
	second := f.New(Defaults{})

	for i, inv := range []models.Invoice{first, second} {
		if inv.ID != "" {
			t.Errorf("invoice %d: expected empty ID, got %q", i, inv.ID)
		}
		if len(inv.Items) != 1 {
			t.Fatalf("invoice %d: expected 1 item, got %d", i, len(inv.Items))
		}

		issue, err := time.Parse(DateLayout, inv.IssueDate)
		if err != nil {
			t.Fatalf("invoice %d: bad issue date %q: %v", i, inv.IssueDate, err)
		}
		due, err := time.Parse(DateLayout, inv.DueDate)
		if err != nil {
			t.Fatalf("invoice %d: bad due date %q: %v", i, inv.DueDate, err)
		}
		if got := due.Sub(issue); got != 15*24*time.Hour {
			t.Errorf("invoice %d: due - issue = %v, want 15 days", i, got)
		}

		item := inv.Items[0]
		if item.Description != "" || item.Quantity != "1" || item.UnitPrice != "0" {
			t.Errorf("invoice %d: unexpected default item %+v", i, item)
		}
		if inv.Status != models.StatusUnpaid {
			t.Errorf("invoice %d: status = %s, want unpaid", i, inv.Status)
		}
		if inv.Currency != currency.Default() {
			t.Errorf("invoice %d: currency = %v, want default", i, inv.Currency)
		}
		if inv.BillFrom != models.DefaultBillFrom {
			t.Errorf("invoice %d: billFrom = %+v, want built-in default", i, inv.BillFrom)
		}
		if inv.Notes != DefaultNotes {
			t.Errorf("invoice %d: notes = %q", i, inv.Notes)
		}
	}

	if first.IssueDate != "2026-10-19" || first.DueDate != "2026-11-03" {
		t.Errorf("dates = %s/%s, want 2026-10-19/2026-11-03", first.IssueDate, first.DueDate)
	}
	if first.Items[0].ID == second.Items[0].ID {
		t.Error("line items of different invoices share an ID")
	}
	if first.InvoiceNumber == second.InvoiceNumber {
		t.Errorf("invoice numbers collide: %s", first.InvoiceNumber)
	}
}

func TestFactoryInvoiceNumber(t *testing.T) {
	now := time.UnixMilli(1_760_000_123_456).UTC()
	f := NewFactory(&ids.Sequence{}, fixedClock(now))

	if got := f.New(Defaults{}).InvoiceNumber; got != "INV-123456" {
		t.Errorf("first number = %s, want INV-123456", got)
	}
	if got := f.New(Defaults{}).InvoiceNumber; got != "INV-123457" {
		t.Errorf("second number = %s, want INV-123457", got)
	}
}

func TestFactoryUsesDefaults(t *testing.T) {
	f := NewFactory(&ids.Sequence{}, nil)
	from := models.PartyInfo{Name: "Acme", Email: "billing@acme.test", Address: "1 Road"}

	inv := f.New(Defaults{BillFrom: from, Logo: "data:image/png;base64,AAAA"})

	if inv.BillFrom != from {
		t.Errorf("billFrom = %+v, want %+v", inv.BillFrom, from)
	}
	if inv.Logo != "data:image/png;base64,AAAA" {
		t.Errorf("logo = %q", inv.Logo)
	}
	if inv.BillTo != (models.PartyInfo{}) {
		t.Errorf("billTo should start empty, got %+v", inv.BillTo)
	}
}
