// Package export hands a rendered invoice view to a document renderer and
// packages the artifact for download. It holds no invoice logic of its own:
// the invoice number names the file and everything else comes from the view.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/mmynk/invoicer/internal/metrics"
	"github.com/mmynk/invoicer/internal/notify"
	"github.com/mmynk/invoicer/internal/render"
)

var (
	// ErrRendererUnavailable means no renderer is loaded, or the loaded one
	// cannot produce the requested format.
	ErrRendererUnavailable = errors.New("document renderer unavailable")

	// ErrRenderFailed means the renderer ran and failed.
	ErrRenderFailed = errors.New("document rendering failed")

	// ErrUnknownFormat is returned by ParseFormat.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Format is an export file type.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatJPG Format = "jpg"
)

// ParseFormat accepts "pdf", "jpg" and "jpeg" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the artifact.
func (f Format) ContentType() string {
	if f == FormatJPG {
		return "image/jpeg"
	}
	return "application/pdf"
}

// Label is the upper-case name used in user-facing messages.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// Settings is the configuration bag passed to renderers.
type Settings struct {
	// Scale multiplies the device pixel ratio of raster output.
	Scale float64
	// Quality of lossy formats, 0 to 1.
	Quality float64
	// CrossOriginImages allows images (logo, QR) served from other origins.
	CrossOriginImages bool
}

// DefaultSettings match a crisp single-page export.
var DefaultSettings = Settings{Scale: 2, Quality: 0.95, CrossOriginImages: true}

// Renderer produces a document from a view.
type Renderer interface {
	// Available returns nil when the renderer can produce f right now and an
	// error wrapping ErrRendererUnavailable otherwise.
	Available(ctx context.Context, f Format) error

	Render(ctx context.Context, f Format, view *render.View, s Settings) ([]byte, error)
}

// Result is a finished export.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSettings overrides DefaultSettings.
func WithSettings(s Settings) Option {
	return func(o *Orchestrator) { o.settings = s }
}

// WithTimeout bounds a single render.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithMetrics records export outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// Orchestrator runs exports. Concurrent exports are independent; nothing is
// shared between them except the read-only view each caller passes in.
type Orchestrator struct {
	renderer Renderer
	notifier notify.Notifier
	settings Settings
	timeout  time.Duration
	metrics  *metrics.Metrics
}

// NewOrchestrator creates an Orchestrator. renderer may be nil, in which case
// every export fails with ErrRendererUnavailable.
func NewOrchestrator(renderer Renderer, notifier notify.Notifier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		renderer: renderer,
		notifier: notifier,
		settings: DefaultSettings,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RequestExport renders view as f. base is the invoice number used to name
// the file. On failure a notification is published and no artifact is
// returned.
func (o *Orchestrator) RequestExport(ctx context.Context, f Format, view *render.View, base string) (*Result, error) {
	start := time.Now()

	data, err := o.render(ctx, f, view)
	if err != nil {
		outcome := "failed"
		if errors.Is(err, ErrRendererUnavailable) {
			outcome = "unavailable"
		}
		o.metrics.Export(string(f), outcome, time.Since(start))
		slog.Error("Export failed", "format", f, "invoice_number", base, "error", err)
		o.notifier.Error("Could not generate " + f.Label())
		return nil, err
	}

	o.metrics.Export(string(f), "ok", time.Since(start))

	res := &Result{
		Filename:    Filename(base, f),
		ContentType: f.ContentType(),
		Data:        data,
	}
	slog.Info("Invoice exported", "format", f, "filename", res.Filename, "bytes", len(data))
	o.notifier.Success(f.Label() + " downloaded")
	return res, nil
}

func (o *Orchestrator) render(ctx context.Context, f Format, view *render.View) ([]byte, error) {
	if o.renderer == nil {
		return nil, fmt.Errorf("%w: none configured", ErrRendererUnavailable)
	}
	if view == nil {
		return nil, fmt.Errorf("%w: nothing to render", ErrRenderFailed)
	}
	if err := o.renderer.Available(ctx, f); err != nil {
		if !errors.Is(err, ErrRendererUnavailable) {
			err = fmt.Errorf("%w: %w", ErrRendererUnavailable, err)
		}
		return nil, err
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	data, err := o.renderer.Render(ctx, f, view, o.settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty %s", ErrRenderFailed, f)
	}
	return data, nil
}

var filenameSafe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Filename derives "invoice-<invoiceNumber>.<ext>". Invoice numbers that are
// not safe in a file name are slugified.
func Filename(invoiceNumber string, f Format) string {
	base := strings.TrimSpace(invoiceNumber)
	if !filenameSafe.MatchString(base) {
		base = slug.Make(base)
	}
	if base == "" {
		return "invoice." + f.Extension()
	}
	return "invoice-" + base + "." + f.Extension()
}
