package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/groupspend/pkg/api"
)

const ExpenseServiceName = "groupspend.v1.ExpenseService"

const (
	ExpenseServiceHydrateDraftProcedure  = "/groupspend.v1.ExpenseService/HydrateDraft"
	ExpenseServiceUpdateDraftProcedure   = "/groupspend.v1.ExpenseService/UpdateDraft"
	ExpenseServicePreviewSplitProcedure  = "/groupspend.v1.ExpenseService/PreviewSplit"
	ExpenseServiceCreateExpenseProcedure = "/groupspend.v1.ExpenseService/CreateExpense"
	ExpenseServiceEditExpenseProcedure   = "/groupspend.v1.ExpenseService/EditExpense"
	ExpenseServiceGetExpenseProcedure    = "/groupspend.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure  = "/groupspend.v1.ExpenseService/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure = "/groupspend.v1.ExpenseService/DeleteExpense"
)

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	HydrateDraft(context.Context, *connect.Request[api.HydrateDraftRequest]) (*connect.Response[api.HydrateDraftResponse], error)
	UpdateDraft(context.Context, *connect.Request[api.UpdateDraftRequest]) (*connect.Response[api.UpdateDraftResponse], error)
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	EditExpense(context.Context, *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for ExpenseService and returns the
// path prefix to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := connect.WithHandlerOptions(append([]connect.HandlerOption{WithJSON()}, opts...)...)
	hydrateDraft := connect.NewUnaryHandler(ExpenseServiceHydrateDraftProcedure, svc.HydrateDraft, opt)
	updateDraft := connect.NewUnaryHandler(ExpenseServiceUpdateDraftProcedure, svc.UpdateDraft, opt)
	previewSplit := connect.NewUnaryHandler(ExpenseServicePreviewSplitProcedure, svc.PreviewSplit, opt)
	createExpense := connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opt)
	editExpense := connect.NewUnaryHandler(ExpenseServiceEditExpenseProcedure, svc.EditExpense, opt)
	getExpense := connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opt)
	listExpenses := connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opt)
	deleteExpense := connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opt)

	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceHydrateDraftProcedure:
			hydrateDraft.ServeHTTP(w, r)
		case ExpenseServiceUpdateDraftProcedure:
			updateDraft.ServeHTTP(w, r)
		case ExpenseServicePreviewSplitProcedure:
			previewSplit.ServeHTTP(w, r)
		case ExpenseServiceCreateExpenseProcedure:
			createExpense.ServeHTTP(w, r)
		case ExpenseServiceEditExpenseProcedure:
			editExpense.ServeHTTP(w, r)
		case ExpenseServiceGetExpenseProcedure:
			getExpense.ServeHTTP(w, r)
		case ExpenseServiceListExpensesProcedure:
			listExpenses.ServeHTTP(w, r)
		case ExpenseServiceDeleteExpenseProcedure:
			deleteExpense.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ExpenseServiceClient is a client for ExpenseService.
type ExpenseServiceClient interface {
	HydrateDraft(context.Context, *connect.Request[api.HydrateDraftRequest]) (*connect.Response[api.HydrateDraftResponse], error)
	UpdateDraft(context.Context, *connect.Request[api.UpdateDraftRequest]) (*connect.Response[api.UpdateDraftResponse], error)
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	EditExpense(context.Context, *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
}

// NewExpenseServiceClient builds a ExpenseService client for the server at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	opt := connect.WithClientOptions(append([]connect.ClientOption{WithJSON()}, opts...)...)
	return &expenseServiceClient{
		hydrateDraft:  connect.NewClient[api.HydrateDraftRequest, api.HydrateDraftResponse](httpClient, baseURL+ExpenseServiceHydrateDraftProcedure, opt),
		updateDraft:   connect.NewClient[api.UpdateDraftRequest, api.UpdateDraftResponse](httpClient, baseURL+ExpenseServiceUpdateDraftProcedure, opt),
		previewSplit:  connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](httpClient, baseURL+ExpenseServicePreviewSplitProcedure, opt),
		createExpense: connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opt),
		editExpense:   connect.NewClient[api.EditExpenseRequest, api.EditExpenseResponse](httpClient, baseURL+ExpenseServiceEditExpenseProcedure, opt),
		getExpense:    connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opt),
		listExpenses:  connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opt),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opt),
	}
}

type expenseServiceClient struct {
	hydrateDraft  *connect.Client[api.HydrateDraftRequest, api.HydrateDraftResponse]
	updateDraft   *connect.Client[api.UpdateDraftRequest, api.UpdateDraftResponse]
	previewSplit  *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	createExpense *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	editExpense   *connect.Client[api.EditExpenseRequest, api.EditExpenseResponse]
	getExpense    *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listExpenses  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	deleteExpense *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
}

func (c *expenseServiceClient) HydrateDraft(ctx context.Context, req *connect.Request[api.HydrateDraftRequest]) (*connect.Response[api.HydrateDraftResponse], error) {
	return c.hydrateDraft.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateDraft(ctx context.Context, req *connect.Request[api.UpdateDraftRequest]) (*connect.Response[api.UpdateDraftResponse], error) {
	return c.updateDraft.CallUnary(ctx, req)
}

func (c *expenseServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) EditExpense(ctx context.Context, req *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error) {
	return c.editExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) HydrateDraft(context.Context, *connect.Request[api.HydrateDraftRequest]) (*connect.Response[api.HydrateDraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.HydrateDraft is not implemented"))
}

func (UnimplementedExpenseServiceHandler) UpdateDraft(context.Context, *connect.Request[api.UpdateDraftRequest]) (*connect.Response[api.UpdateDraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.UpdateDraft is not implemented"))
}

func (UnimplementedExpenseServiceHandler) PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.PreviewSplit is not implemented"))
}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.CreateExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) EditExpense(context.Context, *connect.Request[api.EditExpenseRequest]) (*connect.Response[api.EditExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.EditExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.GetExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.ListExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.ExpenseService.DeleteExpense is not implemented"))
}
