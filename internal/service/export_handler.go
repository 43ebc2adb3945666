package service

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/mmynk/invoicer/internal/export"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/render"
	"github.com/mmynk/invoicer/internal/store"
)

// maxExportBody bounds the invoice JSON accepted by the export endpoint.
// Logos are data URIs, so this is generous.
const maxExportBody = 8 << 20

// ExportHandler serves POST /export/{format}. The body is the invoice to
// export as JSON; an empty body exports the invoice being edited.
type ExportHandler struct {
	store        *store.Store
	prefs        PreferenceStore
	orchestrator *export.Orchestrator
	options      render.Options
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(st *store.Store, prefs PreferenceStore, o *export.Orchestrator, opts render.Options) *ExportHandler {
	return &ExportHandler{store: st, prefs: prefs, orchestrator: o, options: opts}
}

type exportError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeExportError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	f, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		writeExportError(w, http.StatusNotFound, err.Error(), "")
		return
	}

	inv, err := h.invoiceFrom(r)
	if err != nil {
		slog.Warn("Export request rejected", "format", f, "error", err)
		writeExportError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	slog.Info("Export request received", "format", f, "invoice_number", inv.InvoiceNumber)

	view := render.Build(inv, h.prefs.LoadPreferences(r.Context()), h.options)
	res, err := h.orchestrator.RequestExport(r.Context(), f, view, inv.InvoiceNumber)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, export.ErrRendererUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeExportError(w, status, err.Error(), "Could not generate "+f.Label())
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		slog.Warn("Export download interrupted", "filename", res.Filename, "error", err)
	}
}

func (h *ExportHandler) invoiceFrom(r *http.Request) (models.Invoice, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxExportBody+1))
	if err != nil {
		return models.Invoice{}, err
	}
	if len(body) > maxExportBody {
		return models.Invoice{}, errors.New("invoice too large")
	}
	if len(body) == 0 {
		return h.store.Current(), nil
	}

	var inv models.Invoice
	if err := json.Unmarshal(body, &inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

func writeExportError(w http.ResponseWriter, status int, msg, userMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(exportError{Error: msg, Message: userMsg})
}
