package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/invoicer/internal/api"
	"github.com/mmynk/invoicer/internal/calculator"
	"github.com/mmynk/invoicer/internal/currency"
	"github.com/mmynk/invoicer/internal/format"
	"github.com/mmynk/invoicer/internal/ids"
	"github.com/mmynk/invoicer/internal/invoice"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/notify"
	"github.com/mmynk/invoicer/internal/store"
)

// PreferenceStore loads and saves user preferences.
type PreferenceStore interface {
	LoadPreferences(ctx context.Context) models.Preferences
	SavePreferences(ctx context.Context, prefs models.Preferences) error
}

// Notifications is the notification channel read back into responses.
type Notifications interface {
	notify.Notifier
	Current() *notify.Notification
}

// InvoiceService implements the Connect InvoiceService.
type InvoiceService struct {
	api.UnimplementedInvoiceServiceHandler
	store         *store.Store
	prefs         PreferenceStore
	ids           ids.Generator
	notifications Notifications
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(st *store.Store, prefs PreferenceStore, gen ids.Generator, n Notifications) *InvoiceService {
	return &InvoiceService{store: st, prefs: prefs, ids: gen, notifications: n}
}

// GetState returns the saved invoices and the invoice being edited.
func (s *InvoiceService) GetState(ctx context.Context, req *connect.Request[api.GetStateRequest]) (*connect.Response[api.State], error) {
	slog.Debug("GetState request received")
	return connect.NewResponse(s.state()), nil
}

// CreateInvoice starts a fresh, unsaved invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *connect.Request[api.CreateInvoiceRequest]) (*connect.Response[api.State], error) {
	slog.Info("CreateInvoice request received")

	s.store.CreateNew(ctx)
	return connect.NewResponse(s.state()), nil
}

// SaveInvoice stores the invoice and makes it current.
func (s *InvoiceService) SaveInvoice(ctx context.Context, req *connect.Request[api.SaveInvoiceRequest]) (*connect.Response[api.State], error) {
	slog.Info("SaveInvoice request received",
		"invoice_id", req.Msg.Invoice.ID,
		"invoice_number", req.Msg.Invoice.InvoiceNumber,
		"items_count", len(req.Msg.Invoice.Items),
	)

	inv := req.Msg.Invoice
	if inv.Status == "" {
		inv.Status = models.StatusUnpaid
	}
	if !inv.Status.Valid() {
		slog.Error("SaveInvoice failed", "status", inv.Status)
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown status %q", inv.Status))
	}
	inv.Currency = currency.Resolve(inv.Currency)

	saved := s.store.Save(ctx, inv)
	slog.Info("Invoice saved", "invoice_id", saved.ID)

	return connect.NewResponse(s.state()), nil
}

// SelectInvoice loads a saved invoice into the editor.
func (s *InvoiceService) SelectInvoice(ctx context.Context, req *connect.Request[api.SelectInvoiceRequest]) (*connect.Response[api.State], error) {
	slog.Info("SelectInvoice request received", "invoice_id", req.Msg.ID)

	if _, err := s.store.SelectForEdit(req.Msg.ID); err != nil {
		slog.Error("SelectInvoice failed", "invoice_id", req.Msg.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(s.state()), nil
}

// DeleteInvoice removes a saved invoice. Unknown IDs are not an error.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, req *connect.Request[api.DeleteInvoiceRequest]) (*connect.Response[api.DeleteInvoiceResponse], error) {
	slog.Info("DeleteInvoice request received", "invoice_id", req.Msg.ID)

	deleted := s.store.Delete(ctx, req.Msg.ID)

	return connect.NewResponse(&api.DeleteInvoiceResponse{
		Deleted: deleted,
		State:   *s.state(),
	}), nil
}

// ClearInvoices deletes every saved invoice. Requires Confirm.
func (s *InvoiceService) ClearInvoices(ctx context.Context, req *connect.Request[api.ClearInvoicesRequest]) (*connect.Response[api.State], error) {
	slog.Info("ClearInvoices request received", "confirm", req.Msg.Confirm)

	if !req.Msg.Confirm {
		slog.Warn("ClearInvoices rejected without confirmation")
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("clearing all invoices cannot be undone; set confirm to true"))
	}

	s.store.ClearAll(ctx)
	return connect.NewResponse(s.state()), nil
}

// AddItem appends an empty line item.
func (s *InvoiceService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	inv := s.target(req.Msg.Invoice)
	slog.Info("AddItem request received", "invoice_number", inv.InvoiceNumber)

	return s.itemResponse(invoice.AddItem(inv, s.ids), true), nil
}

// RemoveItem removes a line item by ID.
func (s *InvoiceService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.ItemResponse], error) {
	inv := s.target(req.Msg.Invoice)
	slog.Info("RemoveItem request received", "invoice_number", inv.InvoiceNumber, "item_id", req.Msg.ItemID)

	out, removed := invoice.RemoveItem(inv, req.Msg.ItemID)
	if !removed {
		slog.Debug("RemoveItem found no item", "item_id", req.Msg.ItemID)
	}
	return s.itemResponse(out, removed), nil
}

// UpdateItem sets one field of a line item to the raw text typed by the user.
func (s *InvoiceService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error) {
	inv := s.target(req.Msg.Invoice)
	slog.Debug("UpdateItem request received", "item_id", req.Msg.ItemID, "field", req.Msg.Field)

	out, updated, err := invoice.UpdateItemField(inv, req.Msg.ItemID, invoice.Field(req.Msg.Field), req.Msg.Value)
	if err != nil {
		slog.Error("UpdateItem failed", "item_id", req.Msg.ItemID, "error", err)
		return nil, connectError(err)
	}
	return s.itemResponse(out, updated), nil
}

// MoveItem swaps a line item with its neighbour.
func (s *InvoiceService) MoveItem(ctx context.Context, req *connect.Request[api.MoveItemRequest]) (*connect.Response[api.ItemResponse], error) {
	inv := s.target(req.Msg.Invoice)
	slog.Info("MoveItem request received", "item_id", req.Msg.ItemID, "direction", req.Msg.Direction)

	dir := invoice.Direction(req.Msg.Direction)
	if dir != invoice.Up && dir != invoice.Down {
		slog.Error("MoveItem failed", "direction", req.Msg.Direction)
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("direction must be up or down, got %q", req.Msg.Direction))
	}

	found := inv.ItemIndex(req.Msg.ItemID) >= 0
	return s.itemResponse(invoice.MoveItem(inv, req.Msg.ItemID, dir), found), nil
}

// ReorderItem moves a line item to an arbitrary position.
func (s *InvoiceService) ReorderItem(ctx context.Context, req *connect.Request[api.ReorderItemRequest]) (*connect.Response[api.ItemResponse], error) {
	inv := s.target(req.Msg.Invoice)
	slog.Info("ReorderItem request received", "from", req.Msg.FromIndex, "to", req.Msg.ToIndex)

	out, err := invoice.ReorderItem(inv, req.Msg.FromIndex, req.Msg.ToIndex)
	if err != nil {
		slog.Error("ReorderItem failed", "error", err)
		return nil, connectError(err)
	}
	return s.itemResponse(out, req.Msg.FromIndex != req.Msg.ToIndex), nil
}

// ComputeTotals derives subtotal, tax and total of any invoice.
func (s *InvoiceService) ComputeTotals(ctx context.Context, req *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.ComputeTotalsResponse], error) {
	slog.Debug("ComputeTotals request received", "items_count", len(req.Msg.Invoice.Items))

	return connect.NewResponse(&api.ComputeTotalsResponse{
		Totals: totalsOf(req.Msg.Invoice),
	}), nil
}

// ListCurrencies returns the currency catalog.
func (s *InvoiceService) ListCurrencies(ctx context.Context, req *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error) {
	return connect.NewResponse(&api.ListCurrenciesResponse{
		Currencies: currency.All(),
		Default:    currency.Default(),
	}), nil
}

// GetPreferences returns the saved preferences or their defaults.
func (s *InvoiceService) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return connect.NewResponse(&api.PreferencesResponse{
		Preferences:  s.prefs.LoadPreferences(ctx),
		Notification: s.notifications.Current(),
	}), nil
}

// SavePreferences stores the preferences. A storage failure is reported
// through the notification, not as an RPC error.
func (s *InvoiceService) SavePreferences(ctx context.Context, req *connect.Request[api.SavePreferencesRequest]) (*connect.Response[api.PreferencesResponse], error) {
	prefs := req.Msg.Preferences
	slog.Info("SavePreferences request received", "theme_color", prefs.ThemeColor, "dark_mode", prefs.DarkMode)

	if prefs.ThemeColor == "" {
		prefs.ThemeColor = models.DefaultThemeColor
	}

	if err := s.prefs.SavePreferences(ctx, prefs); err != nil {
		slog.Error("SavePreferences failed", "error", err)
		s.notifications.Error("Could not save preferences")
	} else {
		s.notifications.Success("Preferences saved")
	}

	return connect.NewResponse(&api.PreferencesResponse{
		Preferences:  prefs,
		Notification: s.notifications.Current(),
	}), nil
}

// target picks the invoice an item operation works on.
func (s *InvoiceService) target(inv *models.Invoice) models.Invoice {
	if inv != nil {
		return inv.Clone()
	}
	return s.store.Current()
}

func (s *InvoiceService) itemResponse(inv models.Invoice, changed bool) *connect.Response[api.ItemResponse] {
	s.store.SetCurrent(inv)
	return connect.NewResponse(&api.ItemResponse{
		Invoice: inv,
		Totals:  totalsOf(inv),
		Changed: changed,
	})
}

func (s *InvoiceService) state() *api.State {
	current := s.store.Current()
	return &api.State{
		Invoices:     s.store.Invoices(),
		Current:      current,
		Totals:       totalsOf(current),
		Notification: s.notifications.Current(),
	}
}

func totalsOf(inv models.Invoice) api.Totals {
	t := calculator.ComputeTotals(inv)
	r := t.Rounded()
	symbol := currency.Resolve(inv.Currency).Symbol

	return api.Totals{
		Subtotal:         r.Subtotal.StringFixed(2),
		TaxAmount:        r.TaxAmount.StringFixed(2),
		Total:            r.Total.StringFixed(2),
		SubtotalDisplay:  format.Money(symbol, t.Subtotal),
		TaxAmountDisplay: format.Money(symbol, t.TaxAmount),
		TotalDisplay:     format.Money(symbol, t.Total),
		NegativeTotal:    t.IsNegative(),
	}
}

// connectError maps domain errors onto Connect codes.
func connectError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, invoice.ErrInvalidIndex), errors.Is(err, invoice.ErrUnknownField):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
