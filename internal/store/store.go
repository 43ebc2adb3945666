// Package store manages the saved invoice collection together with the single
// invoice currently being edited.
//
// Every change to the collection is written through to the persistence
// gateway before the call returns. A failed write never rolls back the
// in-memory state; it is reported to the user through the notifier so that
// unsaved work stays usable.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/invoicer/internal/ids"
	"github.com/mmynk/invoicer/internal/invoice"
	"github.com/mmynk/invoicer/internal/metrics"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/notify"
)

// ErrNotFound is returned when no saved invoice has the requested ID.
var ErrNotFound = errors.New("invoice not found")

const persistFailedMessage = "Could not save invoices. Your changes are kept until you close the editor."

// Gateway is the persistence capability the store depends on.
type Gateway interface {
	LoadInvoices(ctx context.Context) []models.Invoice
	SaveInvoices(ctx context.Context, invoices []models.Invoice) error
	LoadPreferences(ctx context.Context) models.Preferences
	SaveBillFromDefault(ctx context.Context, from models.PartyInfo) error
	SaveCompanyLogo(ctx context.Context, logo string) error
}

// Config holds the store's collaborators.
type Config struct {
	Gateway  Gateway
	Factory  *invoice.Factory
	IDs      ids.Generator
	Notifier notify.Notifier
	Metrics  *metrics.Metrics
}

// Store is safe for concurrent use. Operations are serialized, so a save
// always completes (ID assigned, collection updated, write attempted) before
// a later delete or select of the same ID is processed.
type Store struct {
	gateway  Gateway
	factory  *invoice.Factory
	ids      ids.Generator
	notifier notify.Notifier
	metrics  *metrics.Metrics

	mu       sync.Mutex
	invoices []models.Invoice
	current  models.Invoice
}

// New loads the saved collection and starts editing a fresh invoice.
func New(ctx context.Context, cfg Config) *Store {
	s := &Store{
		gateway:  cfg.Gateway,
		factory:  cfg.Factory,
		ids:      cfg.IDs,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
	}

	s.invoices = s.gateway.LoadInvoices(ctx)
	s.current = s.newInvoice(ctx)
	s.metrics.StoredInvoices(len(s.invoices))

	slog.Info("Invoice store ready", "saved_invoices", len(s.invoices))
	return s
}

// Current returns a copy of the invoice being edited.
func (s *Store) Current() models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// SetCurrent replaces the invoice being edited without saving it.
// The saved collection is not touched.
func (s *Store) SetCurrent(inv models.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = inv.Clone()
}

// Invoices returns copies of the saved invoices in collection order.
func (s *Store) Invoices() []models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Invoice, len(s.invoices))
	for i, inv := range s.invoices {
		out[i] = inv.Clone()
	}
	return out
}

// CreateNew starts editing a fresh, unsaved invoice and returns it.
func (s *Store) CreateNew(ctx context.Context) models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.newInvoice(ctx)
	slog.Info("New invoice started", "invoice_number", s.current.InvoiceNumber)
	return s.current.Clone()
}

// Save stores inv and makes it the current invoice.
//
// An invoice without an ID is assigned one and appended. An invoice whose ID
// is already saved replaces that entry in place, so repeated saves never
// duplicate. An invoice carrying an ID the collection does not know (for
// example one deleted after it was opened) is appended with its ID intact.
func (s *Store) Save(ctx context.Context, inv models.Invoice) models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := inv.Clone()
	if saved.Items == nil {
		saved.Items = []models.LineItem{}
	}

	if !saved.IsSaved() {
		saved.ID = s.ids.InvoiceID()
		s.invoices = append(s.invoices, saved)
		slog.Info("Invoice created", "invoice_id", saved.ID, "invoice_number", saved.InvoiceNumber)
	} else if idx := s.indexOf(saved.ID); idx >= 0 {
		s.invoices[idx] = saved
		slog.Info("Invoice updated", "invoice_id", saved.ID, "invoice_number", saved.InvoiceNumber)
	} else {
		s.invoices = append(s.invoices, saved)
		slog.Warn("Saved invoice was not in the collection, re-adding", "invoice_id", saved.ID)
	}

	s.current = saved.Clone()
	s.persist(ctx, "Invoice saved successfully")
	s.rememberDefaults(ctx, saved)

	return saved.Clone()
}

// SelectForEdit makes a copy of the saved invoice with the given ID current.
func (s *Store) SelectForEdit(id string) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Invoice{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.current = s.invoices[idx].Clone()
	slog.Info("Invoice selected for editing", "invoice_id", id)
	return s.current.Clone(), nil
}

// Delete removes the saved invoice with the given ID. If it was being edited,
// editing restarts on a fresh invoice. Deleting an unknown ID is a no-op and
// returns false.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		slog.Debug("Delete of unknown invoice ignored", "invoice_id", id)
		return false
	}

	s.invoices = append(s.invoices[:idx], s.invoices[idx+1:]...)
	if s.current.ID == id {
		s.current = s.newInvoice(ctx)
	}

	slog.Info("Invoice deleted", "invoice_id", id)
	s.persist(ctx, "Invoice deleted")
	return true
}

// ClearAll deletes every saved invoice and restarts editing on a fresh one.
// This cannot be undone; callers must obtain explicit confirmation first.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.invoices)
	s.invoices = []models.Invoice{}
	s.current = s.newInvoice(ctx)

	slog.Warn("All invoices cleared", "removed", removed)
	s.persist(ctx, "All invoices cleared")
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) newInvoice(ctx context.Context) models.Invoice {
	prefs := s.gateway.LoadPreferences(ctx)
	return s.factory.New(invoice.Defaults{
		BillFrom: prefs.DefaultBillFrom,
		Logo:     prefs.CompanyLogo,
	})
}

// persist writes the whole collection and tells the user how it went.
// Must be called with mu held.
func (s *Store) persist(ctx context.Context, success string) {
	s.metrics.StoredInvoices(len(s.invoices))
	if err := s.gateway.SaveInvoices(ctx, s.invoices); err != nil {
		slog.Error("Failed to persist invoices", "count", len(s.invoices), "error", err)
		s.notifier.Error(persistFailedMessage)
		return
	}
	s.notifier.Success(success)
}

// rememberDefaults keeps the issuer details and logo of the last saved
// invoice for new invoices. Failures are logged only; the invoice itself
// was already handled by persist.
func (s *Store) rememberDefaults(ctx context.Context, inv models.Invoice) {
	if err := s.gateway.SaveBillFromDefault(ctx, inv.BillFrom); err != nil {
		slog.Warn("Failed to remember bill-from details", "error", err)
	}
	if inv.Logo != "" {
		if err := s.gateway.SaveCompanyLogo(ctx, inv.Logo); err != nil {
			slog.Warn("Failed to remember company logo", "error", err)
		}
	}
}
