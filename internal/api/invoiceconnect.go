package api

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// InvoiceServiceName is the fully-qualified name of the InvoiceService.
const InvoiceServiceName = "invoicer.v1.InvoiceService"

// Procedure paths, used for routing and in interceptors.
const (
	InvoiceServiceGetStateProcedure        = "/invoicer.v1.InvoiceService/GetState"
	InvoiceServiceCreateInvoiceProcedure   = "/invoicer.v1.InvoiceService/CreateInvoice"
	InvoiceServiceSaveInvoiceProcedure     = "/invoicer.v1.InvoiceService/SaveInvoice"
	InvoiceServiceSelectInvoiceProcedure   = "/invoicer.v1.InvoiceService/SelectInvoice"
	InvoiceServiceDeleteInvoiceProcedure   = "/invoicer.v1.InvoiceService/DeleteInvoice"
	InvoiceServiceClearInvoicesProcedure   = "/invoicer.v1.InvoiceService/ClearInvoices"
	InvoiceServiceAddItemProcedure         = "/invoicer.v1.InvoiceService/AddItem"
	InvoiceServiceRemoveItemProcedure      = "/invoicer.v1.InvoiceService/RemoveItem"
	InvoiceServiceUpdateItemProcedure      = "/invoicer.v1.InvoiceService/UpdateItem"
	InvoiceServiceMoveItemProcedure        = "/invoicer.v1.InvoiceService/MoveItem"
	InvoiceServiceReorderItemProcedure     = "/invoicer.v1.InvoiceService/ReorderItem"
	InvoiceServiceComputeTotalsProcedure   = "/invoicer.v1.InvoiceService/ComputeTotals"
	InvoiceServiceListCurrenciesProcedure  = "/invoicer.v1.InvoiceService/ListCurrencies"
	InvoiceServiceGetPreferencesProcedure  = "/invoicer.v1.InvoiceService/GetPreferences"
	InvoiceServiceSavePreferencesProcedure = "/invoicer.v1.InvoiceService/SavePreferences"
)

// InvoiceServiceHandler is implemented by the server.
type InvoiceServiceHandler interface {
	GetState(context.Context, *connect.Request[GetStateRequest]) (*connect.Response[State], error)
	CreateInvoice(context.Context, *connect.Request[CreateInvoiceRequest]) (*connect.Response[State], error)
	SaveInvoice(context.Context, *connect.Request[SaveInvoiceRequest]) (*connect.Response[State], error)
	SelectInvoice(context.Context, *connect.Request[SelectInvoiceRequest]) (*connect.Response[State], error)
	DeleteInvoice(context.Context, *connect.Request[DeleteInvoiceRequest]) (*connect.Response[DeleteInvoiceResponse], error)
	ClearInvoices(context.Context, *connect.Request[ClearInvoicesRequest]) (*connect.Response[State], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[ItemResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[ItemResponse], error)
	UpdateItem(context.Context, *connect.Request[UpdateItemRequest]) (*connect.Response[ItemResponse], error)
	MoveItem(context.Context, *connect.Request[MoveItemRequest]) (*connect.Response[ItemResponse], error)
	ReorderItem(context.Context, *connect.Request[ReorderItemRequest]) (*connect.Response[ItemResponse], error)
	ComputeTotals(context.Context, *connect.Request[ComputeTotalsRequest]) (*connect.Response[ComputeTotalsResponse], error)
	ListCurrencies(context.Context, *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error)
	GetPreferences(context.Context, *connect.Request[GetPreferencesRequest]) (*connect.Response[PreferencesResponse], error)
	SavePreferences(context.Context, *connect.Request[SavePreferencesRequest]) (*connect.Response[PreferencesResponse], error)
}

// NewInvoiceServiceHandler builds an HTTP handler serving every procedure
// of svc under the returned path prefix.
func NewInvoiceServiceHandler(svc InvoiceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	routes := map[string]http.Handler{
		InvoiceServiceGetStateProcedure:        connect.NewUnaryHandler(InvoiceServiceGetStateProcedure, svc.GetState, opts...),
		InvoiceServiceCreateInvoiceProcedure:   connect.NewUnaryHandler(InvoiceServiceCreateInvoiceProcedure, svc.CreateInvoice, opts...),
		InvoiceServiceSaveInvoiceProcedure:     connect.NewUnaryHandler(InvoiceServiceSaveInvoiceProcedure, svc.SaveInvoice, opts...),
		InvoiceServiceSelectInvoiceProcedure:   connect.NewUnaryHandler(InvoiceServiceSelectInvoiceProcedure, svc.SelectInvoice, opts...),
		InvoiceServiceDeleteInvoiceProcedure:   connect.NewUnaryHandler(InvoiceServiceDeleteInvoiceProcedure, svc.DeleteInvoice, opts...),
		InvoiceServiceClearInvoicesProcedure:   connect.NewUnaryHandler(InvoiceServiceClearInvoicesProcedure, svc.ClearInvoices, opts...),
		InvoiceServiceAddItemProcedure:         connect.NewUnaryHandler(InvoiceServiceAddItemProcedure, svc.AddItem, opts...),
		InvoiceServiceRemoveItemProcedure:      connect.NewUnaryHandler(InvoiceServiceRemoveItemProcedure, svc.RemoveItem, opts...),
		InvoiceServiceUpdateItemProcedure:      connect.NewUnaryHandler(InvoiceServiceUpdateItemProcedure, svc.UpdateItem, opts...),
		InvoiceServiceMoveItemProcedure:        connect.NewUnaryHandler(InvoiceServiceMoveItemProcedure, svc.MoveItem, opts...),
		InvoiceServiceReorderItemProcedure:     connect.NewUnaryHandler(InvoiceServiceReorderItemProcedure, svc.ReorderItem, opts...),
		InvoiceServiceComputeTotalsProcedure:   connect.NewUnaryHandler(InvoiceServiceComputeTotalsProcedure, svc.ComputeTotals, opts...),
		InvoiceServiceListCurrenciesProcedure:  connect.NewUnaryHandler(InvoiceServiceListCurrenciesProcedure, svc.ListCurrencies, opts...),
		InvoiceServiceGetPreferencesProcedure:  connect.NewUnaryHandler(InvoiceServiceGetPreferencesProcedure, svc.GetPreferences, opts...),
		InvoiceServiceSavePreferencesProcedure: connect.NewUnaryHandler(InvoiceServiceSavePreferencesProcedure, svc.SavePreferences, opts...),
	}

	prefix := "/" + InvoiceServiceName + "/"
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UnimplementedInvoiceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedInvoiceServiceHandler struct{}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

func (UnimplementedInvoiceServiceHandler) GetState(context.Context, *connect.Request[GetStateRequest]) (*connect.Response[State], error) {
	return nil, unimplemented(InvoiceServiceGetStateProcedure)
}

func (UnimplementedInvoiceServiceHandler) CreateInvoice(context.Context, *connect.Request[CreateInvoiceRequest]) (*connect.Response[State], error) {
	return nil, unimplemented(InvoiceServiceCreateInvoiceProcedure)
}

func (UnimplementedInvoiceServiceHandler) SaveInvoice(context.Context, *connect.Request[SaveInvoiceRequest]) (*connect.Response[State], error) {
	return nil, unimplemented(InvoiceServiceSaveInvoiceProcedure)
}

func (UnimplementedInvoiceServiceHandler) SelectInvoice(context.Context, *connect.Request[SelectInvoiceRequest]) (*connect.Response[State], error) {
	return nil, unimplemented(InvoiceServiceSelectInvoiceProcedure)
}

func (UnimplementedInvoiceServiceHandler) DeleteInvoice(context.Context, *connect.Request[DeleteInvoiceRequest]) (*connect.Response[DeleteInvoiceResponse], error) {
	return nil, unimplemented(InvoiceServiceDeleteInvoiceProcedure)
}

func (UnimplementedInvoiceServiceHandler) ClearInvoices(context.Context, *connect.Request[ClearInvoicesRequest]) (*connect.Response[State], error) {
	return nil, unimplemented(InvoiceServiceClearInvoicesProcedure)
}

func (UnimplementedInvoiceServiceHandler) AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[ItemResponse], error) {
	return nil, unimplemented(InvoiceServiceAddItemProcedure)
}

func (UnimplementedInvoiceServiceHandler) RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[ItemResponse], error) {
	return nil, unimplemented(InvoiceServiceRemoveItemProcedure)
}

func (UnimplementedInvoiceServiceHandler) UpdateItem(context.Context, *connect.Request[UpdateItemRequest]) (*connect.Response[ItemResponse], error) {
	return nil, unimplemented(InvoiceServiceUpdateItemProcedure)
}

func (UnimplementedInvoiceServiceHandler) MoveItem(context.Context, *connect.Request[MoveItemRequest]) (*connect.Response[ItemResponse], error) {
	return nil, unimplemented(InvoiceServiceMoveItemProcedure)
}

func (UnimplementedInvoiceServiceHandler) ReorderItem(context.Context, *connect.Request[ReorderItemRequest]) (*connect.Response[ItemResponse], error) {
	return nil, unimplemented(InvoiceServiceReorderItemProcedure)
}

func (UnimplementedInvoiceServiceHandler) ComputeTotals(context.Context, *connect.Request[ComputeTotalsRequest]) (*connect.Response[ComputeTotalsResponse], error) {
	return nil, unimplemented(InvoiceServiceComputeTotalsProcedure)
}

func (UnimplementedInvoiceServiceHandler) ListCurrencies(context.Context, *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error) {
	return nil, unimplemented(InvoiceServiceListCurrenciesProcedure)
}

func (UnimplementedInvoiceServiceHandler) GetPreferences(context.Context, *connect.Request[GetPreferencesRequest]) (*connect.Response[PreferencesResponse], error) {
	return nil, unimplemented(InvoiceServiceGetPreferencesProcedure)
}

func (UnimplementedInvoiceServiceHandler) SavePreferences(context.Context, *connect.Request[SavePreferencesRequest]) (*connect.Response[PreferencesResponse], error) {
	return nil, unimplemented(InvoiceServiceSavePreferencesProcedure)
}
