// Package persistence loads and saves invoices and preferences through a
// storage.Store with fail-soft semantics: reads never fail (they fall back to
// empty or default values) and writes report errors without crashing.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mmynk/invoicer/internal/currency"
	"github.com/mmynk/invoicer/internal/metrics"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/storage"
)

// Keys of the persisted state layout.
const (
	KeyInvoices    = "invoices"
	KeyBillFrom    = "billFromDetails"
	KeyCompanyLogo = "companyLogo"
	KeyThemeColor  = "themeColor"
	KeyDarkMode    = "darkMode"
)

// ErrPersistenceUnavailable wraps every write failure, including panics
// raised by the storage backend.
var ErrPersistenceUnavailable = errors.New("persistence unavailable")

// Option configures a Gateway.
type Option func(*Gateway)

// WithPreferDark sets the dark-mode value used when none has been saved.
// It stands in for the system light/dark signal.
func WithPreferDark(dark bool) Option {
	return func(g *Gateway) { g.preferDark = dark }
}

// WithMetrics records write failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// Gateway is the fail-soft persistence boundary.
type Gateway struct {
	kv         storage.Store
	preferDark bool
	metrics    *metrics.Metrics
}

// NewGateway wraps kv.
func NewGateway(kv storage.Store, opts ...Option) *Gateway {
	g := &Gateway{kv: kv}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoadInvoices returns the saved invoices, or an empty slice when nothing is
// stored, the backend fails, or the stored value does not parse.
func (g *Gateway) LoadInvoices(ctx context.Context) []models.Invoice {
	raw, ok := g.read(ctx, KeyInvoices)
	if !ok {
		return []models.Invoice{}
	}

	var invoices []models.Invoice
	if err := json.Unmarshal([]byte(raw), &invoices); err != nil {
		slog.Warn("Stored invoices are corrupt, starting empty", "key", KeyInvoices, "error", err)
		return []models.Invoice{}
	}

	out := make([]models.Invoice, 0, len(invoices))
	seen := make(map[string]bool, len(invoices))
	for _, inv := range invoices {
		if inv.ID == "" {
			slog.Warn("Skipping stored invoice without ID", "invoice_number", inv.InvoiceNumber)
			continue
		}
		if seen[inv.ID] {
			slog.Warn("Skipping stored invoice with duplicate ID", "invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber)
			continue
		}
		seen[inv.ID] = true
		out = append(out, normalize(inv))
	}
	slog.Info("Invoices loaded", "count", len(out))
	return out
}

// SaveInvoices replaces the stored invoice collection.
func (g *Gateway) SaveInvoices(ctx context.Context, invoices []models.Invoice) error {
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	data, err := json.Marshal(invoices)
	if err != nil {
		return g.writeFailed(KeyInvoices, err)
	}
	return g.write(ctx, KeyInvoices, string(data))
}

// LoadPreferences reads every preference independently so one bad value
// does not discard the others.
func (g *Gateway) LoadPreferences(ctx context.Context) models.Preferences {
	prefs := models.Preferences{
		DefaultBillFrom: models.DefaultBillFrom,
		ThemeColor:      models.DefaultThemeColor,
		DarkMode:        g.preferDark,
	}

	if raw, ok := g.read(ctx, KeyBillFrom); ok {
		var from models.PartyInfo
		if err := json.Unmarshal([]byte(raw), &from); err != nil {
			slog.Warn("Stored bill-from details are corrupt, using defaults", "error", err)
		} else if from != (models.PartyInfo{}) {
			prefs.DefaultBillFrom = from
		}
	}

	if raw, ok := g.read(ctx, KeyCompanyLogo); ok {
		prefs.CompanyLogo = raw
	}

	if raw, ok := g.read(ctx, KeyThemeColor); ok && raw != "" {
		prefs.ThemeColor = raw
	}

	if raw, ok := g.read(ctx, KeyDarkMode); ok {
		dark, err := strconv.ParseBool(raw)
		if err != nil {
			slog.Warn("Stored dark mode flag is invalid, using system preference", "value", raw)
		} else {
			prefs.DarkMode = dark
		}
	}

	return prefs
}

// SavePreferences writes every preference. All keys are attempted even when
// one fails; the returned error joins the failures.
func (g *Gateway) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	return errors.Join(
		g.SaveBillFromDefault(ctx, prefs.DefaultBillFrom),
		g.SaveCompanyLogo(ctx, prefs.CompanyLogo),
		g.write(ctx, KeyThemeColor, prefs.ThemeColor),
		g.write(ctx, KeyDarkMode, strconv.FormatBool(prefs.DarkMode)),
	)
}

// SaveBillFromDefault remembers the issuer details for future invoices.
func (g *Gateway) SaveBillFromDefault(ctx context.Context, from models.PartyInfo) error {
	data, err := json.Marshal(from)
	if err != nil {
		return g.writeFailed(KeyBillFrom, err)
	}
	return g.write(ctx, KeyBillFrom, string(data))
}

// SaveCompanyLogo remembers the logo for future invoices. An empty logo
// removes the saved one.
func (g *Gateway) SaveCompanyLogo(ctx context.Context, logo string) error {
	if logo == "" {
		return g.guard(KeyCompanyLogo, func() error {
			return g.kv.Remove(ctx, KeyCompanyLogo)
		})
	}
	return g.write(ctx, KeyCompanyLogo, logo)
}

// read returns the value under key. Missing keys, backend errors and panics
// all report false; only the unexpected cases are logged.
func (g *Gateway) read(ctx context.Context, key string) (value string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Storage read panicked", "key", key, "panic", r)
			value, ok = "", false
		}
	}()

	value, err := g.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", false
	}
	if err != nil {
		slog.Warn("Storage read failed, using fallback", "key", key, "error", err)
		return "", false
	}
	return value, true
}

func (g *Gateway) write(ctx context.Context, key, value string) error {
	return g.guard(key, func() error {
		return g.kv.Set(ctx, key, value)
	})
}

// guard runs a storage write, converting both errors and panics into
// ErrPersistenceUnavailable.
func (g *Gateway) guard(key string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = g.writeFailed(key, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := fn(); err != nil {
		return g.writeFailed(key, err)
	}
	return nil
}

func (g *Gateway) writeFailed(key string, cause error) error {
	slog.Error("Storage write failed", "key", key, "error", cause)
	g.metrics.PersistenceFailure(key)
	return fmt.Errorf("%w: write %s: %w", ErrPersistenceUnavailable, key, cause)
}

// normalize repairs fields that older or hand-edited data may lack.
func normalize(inv models.Invoice) models.Invoice {
	if inv.Items == nil {
		inv.Items = []models.LineItem{}
	}
	if !inv.Status.Valid() {
		inv.Status = models.StatusUnpaid
	}
	inv.Currency = currency.Resolve(inv.Currency)
	return inv
}
