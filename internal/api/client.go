package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// InvoiceServiceClient is a client for the InvoiceService.
type InvoiceServiceClient interface {
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

// NewInvoiceServiceClient constructs a client for the service at baseURL
// (e.g. http://localhost:8080). The JSON codec is always used.
func NewInvoiceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InvoiceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &invoiceServiceClient{
		getState:        connect.NewClient[GetStateRequest, State](httpClient, baseURL+InvoiceServiceGetStateProcedure, opts...),
		createInvoice:   connect.NewClient[CreateInvoiceRequest, State](httpClient, baseURL+InvoiceServiceCreateInvoiceProcedure, opts...),
		saveInvoice:     connect.NewClient[SaveInvoiceRequest, State](httpClient, baseURL+InvoiceServiceSaveInvoiceProcedure, opts...),
		selectInvoice:   connect.NewClient[SelectInvoiceRequest, State](httpClient, baseURL+InvoiceServiceSelectInvoiceProcedure, opts...),
		deleteInvoice:   connect.NewClient[DeleteInvoiceRequest, DeleteInvoiceResponse](httpClient, baseURL+InvoiceServiceDeleteInvoiceProcedure, opts...),
		clearInvoices:   connect.NewClient[ClearInvoicesRequest, State](httpClient, baseURL+InvoiceServiceClearInvoicesProcedure, opts...),
		addItem:         connect.NewClient[AddItemRequest, ItemResponse](httpClient, baseURL+InvoiceServiceAddItemProcedure, opts...),
		removeItem:      connect.NewClient[RemoveItemRequest, ItemResponse](httpClient, baseURL+InvoiceServiceRemoveItemProcedure, opts...),
		updateItem:      connect.NewClient[UpdateItemRequest, ItemResponse](httpClient, baseURL+InvoiceServiceUpdateItemProcedure, opts...),
		moveItem:        connect.NewClient[MoveItemRequest, ItemResponse](httpClient, baseURL+InvoiceServiceMoveItemProcedure, opts...),
		reorderItem:     connect.NewClient[ReorderItemRequest, ItemResponse](httpClient, baseURL+InvoiceServiceReorderItemProcedure, opts...),
		computeTotals:   connect.NewClient[ComputeTotalsRequest, ComputeTotalsResponse](httpClient, baseURL+InvoiceServiceComputeTotalsProcedure, opts...),
		listCurrencies:  connect.NewClient[ListCurrenciesRequest, ListCurrenciesResponse](httpClient, baseURL+InvoiceServiceListCurrenciesProcedure, opts...),
		getPreferences:  connect.NewClient[GetPreferencesRequest, PreferencesResponse](httpClient, baseURL+InvoiceServiceGetPreferencesProcedure, opts...),
		savePreferences: connect.NewClient[SavePreferencesRequest, PreferencesResponse](httpClient, baseURL+InvoiceServiceSavePreferencesProcedure, opts...),
	}
}

type invoiceServiceClient struct {
	getState        *connect.Client[GetStateRequest, State]
	createInvoice   *connect.Client[CreateInvoiceRequest, State]
	saveInvoice     *connect.Client[SaveInvoiceRequest, State]
	selectInvoice   *connect.Client[SelectInvoiceRequest, State]
	deleteInvoice   *connect.Client[DeleteInvoiceRequest, DeleteInvoiceResponse]
	clearInvoices   *connect.Client[ClearInvoicesRequest, State]
	addItem         *connect.Client[AddItemRequest, ItemResponse]
	removeItem      *connect.Client[RemoveItemRequest, ItemResponse]
	updateItem      *connect.Client[UpdateItemRequest, ItemResponse]
	moveItem        *connect.Client[MoveItemRequest, ItemResponse]
	reorderItem     *connect.Client[ReorderItemRequest, ItemResponse]
	computeTotals   *connect.Client[ComputeTotalsRequest, ComputeTotalsResponse]
	listCurrencies  *connect.Client[ListCurrenciesRequest, ListCurrenciesResponse]
	getPreferences  *connect.Client[GetPreferencesRequest, PreferencesResponse]
	savePreferences *connect.Client[SavePreferencesRequest, PreferencesResponse]
}

func (c *invoiceServiceClient) GetState(ctx context.Context, req *connect.Request[GetStateRequest]) (*connect.Response[State], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) CreateInvoice(ctx context.Context, req *connect.Request[CreateInvoiceRequest]) (*connect.Response[State], error) {
	return c.createInvoice.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) SaveInvoice(ctx context.Context, req *connect.Request[SaveInvoiceRequest]) (*connect.Response[State], error) {
	return c.saveInvoice.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) SelectInvoice(ctx context.Context, req *connect.Request[SelectInvoiceRequest]) (*connect.Response[State], error) {
	return c.selectInvoice.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) DeleteInvoice(ctx context.Context, req *connect.Request[DeleteInvoiceRequest]) (*connect.Response[DeleteInvoiceResponse], error) {
	return c.deleteInvoice.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) ClearInvoices(ctx context.Context, req *connect.Request[ClearInvoicesRequest]) (*connect.Response[State], error) {
	return c.clearInvoices.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[ItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[ItemResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) UpdateItem(ctx context.Context, req *connect.Request[UpdateItemRequest]) (*connect.Response[ItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) MoveItem(ctx context.Context, req *connect.Request[MoveItemRequest]) (*connect.Response[ItemResponse], error) {
	return c.moveItem.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) ReorderItem(ctx context.Context, req *connect.Request[ReorderItemRequest]) (*connect.Response[ItemResponse], error) {
	return c.reorderItem.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) ComputeTotals(ctx context.Context, req *connect.Request[ComputeTotalsRequest]) (*connect.Response[ComputeTotalsResponse], error) {
	return c.computeTotals.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) ListCurrencies(ctx context.Context, req *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error) {
	return c.listCurrencies.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) GetPreferences(ctx context.Context, req *connect.Request[GetPreferencesRequest]) (*connect.Response[PreferencesResponse], error) {
	return c.getPreferences.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) SavePreferences(ctx context.Context, req *connect.Request[SavePreferencesRequest]) (*connect.Response[PreferencesResponse], error) {
	return c.savePreferences.CallUnary(ctx, req)
}
