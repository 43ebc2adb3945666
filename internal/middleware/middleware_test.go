package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/invoicer/internal/api"
	"github.com/mmynk/invoicer/internal/metrics"
)

type stubService struct {
	api.UnimplementedInvoiceServiceHandler
}

func (stubService) GetState(context.Context, *connect.Request[api.GetStateRequest]) (*connect.Response[api.State], error) {
	return connect.NewResponse(&api.State{}), nil
}

func TestLoggingInterceptor_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	path, handler := api.NewInvoiceServiceHandler(stubService{}, connect.WithInterceptors(LoggingInterceptor(m)))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := api.NewInvoiceServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	if _, err := client.GetState(ctx, connect.NewRequest(&api.GetStateRequest{})); err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	_, err := client.CreateInvoice(ctx, connect.NewRequest(&api.CreateInvoiceRequest{}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Fatalf("expected Unimplemented, got %v", err)
	}

	expected := `
# HELP invoicer_rpc_requests_total RPC calls by procedure and result code.
# TYPE invoicer_rpc_requests_total counter
invoicer_rpc_requests_total{code="ok",procedure="/invoicer.v1.InvoiceService/GetState"} 1
invoicer_rpc_requests_total{code="unimplemented",procedure="/invoicer.v1.InvoiceService/CreateInvoice"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "invoicer_rpc_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestLoggingInterceptor_NilMetrics(t *testing.T) {
	interceptor := LoggingInterceptor(nil)
	next := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&api.State{}), nil
	})

	resp, err := interceptor(next)(context.Background(), connect.NewRequest(&api.GetStateRequest{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected response")
	}
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/export/pdf", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", rec.Code)
	}
	if called {
		t.Error("preflight must not reach the wrapped handler")
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
		t.Error("expected Content-Disposition to be exposed")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export/pdf", nil))
	if !called {
		t.Error("expected POST to reach the wrapped handler")
	}
}

func TestLogging(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected wrapped status, got %d", rec.Code)
	}
}
