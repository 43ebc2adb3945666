package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/invoicer/internal/api"
	"github.com/mmynk/invoicer/internal/ids"
	"github.com/mmynk/invoicer/internal/invoice"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/notify"
	"github.com/mmynk/invoicer/internal/persistence"
	"github.com/mmynk/invoicer/internal/storage/sqlite"
	"github.com/mmynk/invoicer/internal/store"
)

type testServer struct {
	client  api.InvoiceServiceClient
	store   *store.Store
	gateway *persistence.Gateway
	url     string
}

// setupTestServer wires the service over a temporary SQLite database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	kv, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	gen := &ids.Sequence{}
	gateway := persistence.NewGateway(kv)
	center := notify.NewCenter(nil)
	st := store.New(context.Background(), store.Config{
		Gateway:  gateway,
		Factory:  invoice.NewFactory(gen, func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }),
		IDs:      gen,
		Notifier: center,
	})

	path, handler := api.NewInvoiceServiceHandler(NewInvoiceService(st, gateway, gen, center))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		kv.Close()
	})

	return &testServer{
		client:  api.NewInvoiceServiceClient(http.DefaultClient, server.URL),
		store:   st,
		gateway: gateway,
		url:     server.URL,
	}
}

func scenarioInvoice() models.Invoice {
	return models.Invoice{
		InvoiceNumber: "INV-000123",
		IssueDate:     "2026-10-19",
		DueDate:       "2026-11-03",
		BillFrom:      models.PartyInfo{Name: "Acme", Email: "billing@acme.test", Address: "1 Road"},
		BillTo:        models.PartyInfo{Name: "Globex"},
		Items: []models.LineItem{
			{ID: "a", Description: "Design", Quantity: "2", UnitPrice: "50.00"},
			{ID: "b", Description: "Hosting", Quantity: "1", UnitPrice: "25.00"},
		},
		TaxPercent:     "10",
		DiscountAmount: "5.00",
		Status:         models.StatusUnpaid,
		Currency:       models.Currency{Code: "USD", Symbol: "$"},
	}
}

func TestGetState(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.client.GetState(context.Background(), connect.NewRequest(&api.GetStateRequest{}))
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}

	if len(resp.Msg.Invoices) != 0 {
		t.Errorf("expected no invoices, got %d", len(resp.Msg.Invoices))
	}
	if resp.Msg.Current.ID != "" {
		t.Errorf("expected unsaved current invoice, got id %q", resp.Msg.Current.ID)
	}
	if len(resp.Msg.Current.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(resp.Msg.Current.Items))
	}
	if resp.Msg.Current.DueDate != "2026-11-03" {
		t.Errorf("due date: expected 2026-11-03, got %s", resp.Msg.Current.DueDate)
	}
}

func TestSaveInvoice(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	resp, err := ts.client.SaveInvoice(ctx, connect.NewRequest(&api.SaveInvoiceRequest{Invoice: scenarioInvoice()}))
	if err != nil {
		t.Fatalf("SaveInvoice failed: %v", err)
	}

	saved := resp.Msg.Current
	if saved.ID == "" {
		t.Fatal("expected saved invoice to have an ID")
	}
	if len(resp.Msg.Invoices) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(resp.Msg.Invoices))
	}
	if resp.Msg.Totals.Total != "132.50" {
		t.Errorf("total: expected 132.50, got %s", resp.Msg.Totals.Total)
	}
	if resp.Msg.Totals.TotalDisplay != "$132.50" {
		t.Errorf("total display: expected $132.50, got %s", resp.Msg.Totals.TotalDisplay)
	}
	if resp.Msg.Notification == nil || resp.Msg.Notification.Kind != notify.KindSuccess {
		t.Errorf("expected success notification, got %+v", resp.Msg.Notification)
	}

	// Saving again with the assigned ID updates in place.
	saved.Notes = "Paid by wire"
	resp, err = ts.client.SaveInvoice(ctx, connect.NewRequest(&api.SaveInvoiceRequest{Invoice: saved}))
	if err != nil {
		t.Fatalf("second SaveInvoice failed: %v", err)
	}
	if len(resp.Msg.Invoices) != 1 {
		t.Fatalf("expected 1 invoice after update, got %d", len(resp.Msg.Invoices))
	}
	if resp.Msg.Invoices[0].Notes != "Paid by wire" {
		t.Errorf("notes: expected update, got %q", resp.Msg.Invoices[0].Notes)
	}

	persisted := ts.gateway.LoadInvoices(ctx)
	if len(persisted) != 1 || persisted[0].ID != saved.ID {
		t.Errorf("expected persisted invoice %s, got %+v", saved.ID, persisted)
	}
}

func TestSaveInvoice_InvalidStatus(t *testing.T) {
	ts := setupTestServer(t)

	inv := scenarioInvoice()
	inv.Status = "overdue"

	_, err := ts.client.SaveInvoice(context.Background(), connect.NewRequest(&api.SaveInvoiceRequest{Invoice: inv}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestSelectInvoice(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	saveResp, err := ts.client.SaveInvoice(ctx, connect.NewRequest(&api.SaveInvoiceRequest{Invoice: scenarioInvoice()}))
	if err != nil {
		t.Fatalf("SaveInvoice failed: %v", err)
	}
	id := saveResp.Msg.Current.ID

	if _, err := ts.client.CreateInvoice(ctx, connect.NewRequest(&api.CreateInvoiceRequest{})); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	resp, err := ts.client.SelectInvoice(ctx, connect.NewRequest(&api.SelectInvoiceRequest{ID: id}))
	if err != nil {
		t.Fatalf("SelectInvoice failed: %v", err)
	}
	if resp.Msg.Current.ID != id {
		t.Errorf("expected current %s, got %s", id, resp.Msg.Current.ID)
	}

	_, err = ts.client.SelectInvoice(ctx, connect.NewRequest(&api.SelectInvoiceRequest{ID: "missing"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestDeleteInvoice(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	saveResp, err := ts.client.SaveInvoice(ctx, connect.NewRequest(&api.SaveInvoiceRequest{Invoice: scenarioInvoice()}))
	if err != nil {
		t.Fatalf("SaveInvoice failed: %v", err)
	}
	id := saveResp.Msg.Current.ID

	resp, err := ts.client.DeleteInvoice(ctx, connect.NewRequest(&api.DeleteInvoiceRequest{ID: id}))
	if err != nil {
		t.Fatalf("DeleteInvoice failed: %v", err)
	}
	if !resp.Msg.Deleted {
		t.Error("expected first delete to report deleted")
	}
	if resp.Msg.State.Current.ID != "" {
		t.Errorf("expected editor reset after deleting current, got %s", resp.Msg.State.Current.ID)
	}

	resp, err = ts.client.DeleteInvoice(ctx, connect.NewRequest(&api.DeleteInvoiceRequest{ID: id}))
	if err != nil {
		t.Fatalf("second DeleteInvoice failed: %v", err)
	}
	if resp.Msg.Deleted {
		t.Error("expected second delete to be a no-op")
	}
}

func TestClearInvoices(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inv := scenarioInvoice()
		if _, err := ts.client.SaveInvoice(ctx, connect.NewRequest(&api.SaveInvoiceRequest{Invoice: inv})); err != nil {
			t.Fatalf("SaveInvoice failed: %v", err)
		}
	}

	_, err := ts.client.ClearInvoices(ctx, connect.NewRequest(&api.ClearInvoicesRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("expected InvalidArgument without confirmation, got %v", err)
	}
	if got := len(ts.store.Invoices()); got != 3 {
		t.Fatalf("unconfirmed clear must not delete, have %d invoices", got)
	}

	resp, err := ts.client.ClearInvoices(ctx, connect.NewRequest(&api.ClearInvoicesRequest{Confirm: true}))
	if err != nil {
		t.Fatalf("ClearInvoices failed: %v", err)
	}
	if len(resp.Msg.Invoices) != 0 {
		t.Errorf("expected no invoices, got %d", len(resp.Msg.Invoices))
	}
	if resp.Msg.Current.ID != "" {
		t.Errorf("expected fresh current invoice, got id %s", resp.Msg.Current.ID)
	}
}

func TestItemOperations(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	inv := scenarioInvoice()

	t.Run("add item to current invoice", func(t *testing.T) {
		resp, err := ts.client.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{}))
		if err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if len(resp.Msg.Invoice.Items) != 2 {
			t.Errorf("expected 2 items, got %d", len(resp.Msg.Invoice.Items))
		}
		if len(ts.store.Current().Items) != 2 {
			t.Error("expected editor to track the added item")
		}
	})

	t.Run("update quantity keeps raw text", func(t *testing.T) {
		resp, err := ts.client.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{
			Invoice: &inv,
			ItemID:  "a",
			Field:   "quantity",
			Value:   "abc",
		}))
		if err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}
		if resp.Msg.Invoice.Items[0].Quantity != "abc" {
			t.Errorf("expected raw text, got %q", resp.Msg.Invoice.Items[0].Quantity)
		}
		if resp.Msg.Totals.Subtotal != "25.00" {
			t.Errorf("subtotal: expected 25.00, got %s", resp.Msg.Totals.Subtotal)
		}
	})

	t.Run("update unknown field", func(t *testing.T) {
		_, err := ts.client.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{
			Invoice: &inv,
			ItemID:  "a",
			Field:   "color",
			Value:   "red",
		}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("remove missing item", func(t *testing.T) {
		resp, err := ts.client.RemoveItem(ctx, connect.NewRequest(&api.RemoveItemRequest{Invoice: &inv, ItemID: "zzz"}))
		if err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		if resp.Msg.Changed {
			t.Error("expected Changed=false for a missing item")
		}
		if len(resp.Msg.Invoice.Items) != 2 {
			t.Errorf("expected items untouched, got %d", len(resp.Msg.Invoice.Items))
		}
	})

	t.Run("move first item up is a no-op", func(t *testing.T) {
		resp, err := ts.client.MoveItem(ctx, connect.NewRequest(&api.MoveItemRequest{Invoice: &inv, ItemID: "a", Direction: "up"}))
		if err != nil {
			t.Fatalf("MoveItem failed: %v", err)
		}
		if resp.Msg.Invoice.Items[0].ID != "a" || resp.Msg.Invoice.Items[1].ID != "b" {
			t.Errorf("expected order unchanged, got %+v", resp.Msg.Invoice.Items)
		}
	})

	t.Run("move with bad direction", func(t *testing.T) {
		_, err := ts.client.MoveItem(ctx, connect.NewRequest(&api.MoveItemRequest{Invoice: &inv, ItemID: "a", Direction: "left"}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("reorder", func(t *testing.T) {
		resp, err := ts.client.ReorderItem(ctx, connect.NewRequest(&api.ReorderItemRequest{Invoice: &inv, FromIndex: 0, ToIndex: 1}))
		if err != nil {
			t.Fatalf("ReorderItem failed: %v", err)
		}
		if resp.Msg.Invoice.Items[0].ID != "b" {
			t.Errorf("expected b first, got %s", resp.Msg.Invoice.Items[0].ID)
		}
		if !resp.Msg.Changed {
			t.Error("expected Changed=true for a real move")
		}
	})

	t.Run("reorder to same index is unchanged", func(t *testing.T) {
		resp, err := ts.client.ReorderItem(ctx, connect.NewRequest(&api.ReorderItemRequest{Invoice: &inv, FromIndex: 1, ToIndex: 1}))
		if err != nil {
			t.Fatalf("ReorderItem failed: %v", err)
		}
		if resp.Msg.Changed {
			t.Error("expected Changed=false when from equals to")
		}
		if resp.Msg.Invoice.Items[0].ID != "a" || resp.Msg.Invoice.Items[1].ID != "b" {
			t.Errorf("expected order unchanged, got %+v", resp.Msg.Invoice.Items)
		}
	})

	t.Run("reorder out of range", func(t *testing.T) {
		_, err := ts.client.ReorderItem(ctx, connect.NewRequest(&api.ReorderItemRequest{Invoice: &inv, FromIndex: 0, ToIndex: 5}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})
}

func TestComputeTotals(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name     string
		modify   func(*models.Invoice)
		subtotal string
		tax      string
		total    string
		negative bool
	}{
		{"scenario", func(*models.Invoice) {}, "125.00", "12.50", "132.50", false},
		{"no items", func(inv *models.Invoice) { inv.Items = nil; inv.TaxPercent = "0" }, "0.00", "0.00", "-5.00", true},
		{"non-numeric price", func(inv *models.Invoice) { inv.Items[0].UnitPrice = "n/a" }, "25.00", "2.50", "22.50", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := scenarioInvoice()
			tt.modify(&inv)

			resp, err := ts.client.ComputeTotals(context.Background(), connect.NewRequest(&api.ComputeTotalsRequest{Invoice: inv}))
			if err != nil {
				t.Fatalf("ComputeTotals failed: %v", err)
			}

			got := resp.Msg.Totals
			if got.Subtotal != tt.subtotal || got.TaxAmount != tt.tax || got.Total != tt.total {
				t.Errorf("got %s/%s/%s, want %s/%s/%s", got.Subtotal, got.TaxAmount, got.Total, tt.subtotal, tt.tax, tt.total)
			}
			if got.NegativeTotal != tt.negative {
				t.Errorf("negative: expected %v, got %v", tt.negative, got.NegativeTotal)
			}
		})
	}
}

func TestListCurrencies(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.client.ListCurrencies(context.Background(), connect.NewRequest(&api.ListCurrenciesRequest{}))
	if err != nil {
		t.Fatalf("ListCurrencies failed: %v", err)
	}
	if len(resp.Msg.Currencies) == 0 {
		t.Fatal("expected currencies")
	}
	if resp.Msg.Currencies[0] != resp.Msg.Default {
		t.Errorf("expected first entry to be the default, got %+v vs %+v", resp.Msg.Currencies[0], resp.Msg.Default)
	}
}

func TestPreferences(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	resp, err := ts.client.GetPreferences(ctx, connect.NewRequest(&api.GetPreferencesRequest{}))
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if resp.Msg.Preferences.ThemeColor != models.DefaultThemeColor {
		t.Errorf("expected default theme color, got %s", resp.Msg.Preferences.ThemeColor)
	}

	want := models.Preferences{
		DefaultBillFrom: models.PartyInfo{Name: "Acme"},
		ThemeColor:      "#10b981",
		DarkMode:        true,
	}
	if _, err := ts.client.SavePreferences(ctx, connect.NewRequest(&api.SavePreferencesRequest{Preferences: want})); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	resp, err = ts.client.GetPreferences(ctx, connect.NewRequest(&api.GetPreferencesRequest{}))
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if resp.Msg.Preferences != want {
		t.Errorf("expected %+v, got %+v", want, resp.Msg.Preferences)
	}
}
