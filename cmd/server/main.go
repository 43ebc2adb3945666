package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/invoicer/internal/api"
	"github.com/mmynk/invoicer/internal/config"
	"github.com/mmynk/invoicer/internal/export"
	"github.com/mmynk/invoicer/internal/ids"
	"github.com/mmynk/invoicer/internal/invoice"
	"github.com/mmynk/invoicer/internal/metrics"
	"github.com/mmynk/invoicer/internal/middleware"
	"github.com/mmynk/invoicer/internal/notify"
	"github.com/mmynk/invoicer/internal/persistence"
	"github.com/mmynk/invoicer/internal/render"
	"github.com/mmynk/invoicer/internal/service"
	"github.com/mmynk/invoicer/internal/storage"
	"github.com/mmynk/invoicer/internal/storage/memory"
	"github.com/mmynk/invoicer/internal/storage/postgres"
	"github.com/mmynk/invoicer/internal/storage/redis"
	"github.com/mmynk/invoicer/internal/storage/sqlite"
	"github.com/mmynk/invoicer/internal/store"
	"github.com/mmynk/invoicer/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	m := metrics.New(prometheus.DefaultRegisterer)
	center := notify.NewCenter(nil)
	gen := ids.Random{}

	gateway := persistence.NewGateway(kv,
		persistence.WithPreferDark(cfg.UI.PreferDark),
		persistence.WithMetrics(m),
	)
	invoices := store.New(ctx, store.Config{
		Gateway:  gateway,
		Factory:  invoice.NewFactory(gen, nil),
		IDs:      gen,
		Notifier: center,
		Metrics:  m,
	})

	orchestrator := export.NewOrchestrator(newRenderer(cfg.Export), center,
		export.WithSettings(export.Settings{
			Scale:             cfg.Export.Scale,
			Quality:           cfg.Export.Quality,
			CrossOriginImages: true,
		}),
		export.WithTimeout(cfg.Export.Timeout),
		export.WithMetrics(m),
	)

	mux := http.NewServeMux()

	// Register Connect service
	invoicePath, invoiceHandler := api.NewInvoiceServiceHandler(
		service.NewInvoiceService(invoices, gateway, gen, center),
		connect.WithInterceptors(middleware.LoggingInterceptor(m)),
	)
	mux.Handle(invoicePath, invoiceHandler)

	mux.Handle("/export/{format}", service.NewExportHandler(invoices, gateway, orchestrator, render.Options{
		Payment:    cfg.Payment,
		QREndpoint: cfg.QR.Endpoint,
	}))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	staticDir, err := filepath.Abs(cfg.App.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.HandleFunc("/", staticHandler(staticDir))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(middleware.Logging(middleware.CORS(mux)), &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0o755); err != nil {
			return nil, err
		}
		return sqlite.New(cfg.Storage.SQLitePath)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.Storage.PostgresDSN)
	case config.DriverRedis:
		return redis.New(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.DriverMemory:
		slog.Warn("Using in-memory storage; invoices are lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// newRenderer returns nil when exports are disabled; the orchestrator then
// reports every export as unavailable.
func newRenderer(cfg config.ExportConfig) export.Renderer {
	switch cfg.Renderer {
	case config.RendererChrome:
		return export.NewChromeRenderer(export.ChromeConfig{
			RemoteURL: cfg.ChromeURL,
			NoSandbox: cfg.NoSandbox,
		})
	case config.RendererMaroto:
		return export.MarotoRenderer{}
	default:
		slog.Warn("Exports disabled", "renderer", cfg.Renderer)
		return nil
	}
}

// staticHandler serves the editor UI. Unknown paths fall back to index.html.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/invoicer.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}
