package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/groupspend/pkg/api"
)

const PersonalServiceName = "groupspend.v1.PersonalService"

const (
	PersonalServiceCreatePersonalExpenseProcedure = "/groupspend.v1.PersonalService/CreatePersonalExpense"
	PersonalServiceListPersonalExpensesProcedure  = "/groupspend.v1.PersonalService/ListPersonalExpenses"
	PersonalServiceEditPersonalExpenseProcedure   = "/groupspend.v1.PersonalService/EditPersonalExpense"
	PersonalServiceDeletePersonalExpenseProcedure = "/groupspend.v1.PersonalService/DeletePersonalExpense"
	PersonalServiceGetBudgetProcedure             = "/groupspend.v1.PersonalService/GetBudget"
	PersonalServiceUpdateBudgetProcedure          = "/groupspend.v1.PersonalService/UpdateBudget"
)

// PersonalServiceHandler is implemented by the server side of PersonalService.
type PersonalServiceHandler interface {
	CreatePersonalExpense(context.Context, *connect.Request[api.CreatePersonalExpenseRequest]) (*connect.Response[api.CreatePersonalExpenseResponse], error)
	ListPersonalExpenses(context.Context, *connect.Request[api.ListPersonalExpensesRequest]) (*connect.Response[api.ListPersonalExpensesResponse], error)
	EditPersonalExpense(context.Context, *connect.Request[api.EditPersonalExpenseRequest]) (*connect.Response[api.EditPersonalExpenseResponse], error)
	DeletePersonalExpense(context.Context, *connect.Request[api.DeletePersonalExpenseRequest]) (*connect.Response[api.DeletePersonalExpenseResponse], error)
	GetBudget(context.Context, *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
}

// NewPersonalServiceHandler builds an HTTP handler for PersonalService and returns the
// path prefix to mount it on.
func NewPersonalServiceHandler(svc PersonalServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := connect.WithHandlerOptions(append([]connect.HandlerOption{WithJSON()}, opts...)...)
	createPersonalExpense := connect.NewUnaryHandler(PersonalServiceCreatePersonalExpenseProcedure, svc.CreatePersonalExpense, opt)
	listPersonalExpenses := connect.NewUnaryHandler(PersonalServiceListPersonalExpensesProcedure, svc.ListPersonalExpenses, opt)
	editPersonalExpense := connect.NewUnaryHandler(PersonalServiceEditPersonalExpenseProcedure, svc.EditPersonalExpense, opt)
	deletePersonalExpense := connect.NewUnaryHandler(PersonalServiceDeletePersonalExpenseProcedure, svc.DeletePersonalExpense, opt)
	getBudget := connect.NewUnaryHandler(PersonalServiceGetBudgetProcedure, svc.GetBudget, opt)
	updateBudget := connect.NewUnaryHandler(PersonalServiceUpdateBudgetProcedure, svc.UpdateBudget, opt)

	return "/" + PersonalServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PersonalServiceCreatePersonalExpenseProcedure:
			createPersonalExpense.ServeHTTP(w, r)
		case PersonalServiceListPersonalExpensesProcedure:
			listPersonalExpenses.ServeHTTP(w, r)
		case PersonalServiceEditPersonalExpenseProcedure:
			editPersonalExpense.ServeHTTP(w, r)
		case PersonalServiceDeletePersonalExpenseProcedure:
			deletePersonalExpense.ServeHTTP(w, r)
		case PersonalServiceGetBudgetProcedure:
			getBudget.ServeHTTP(w, r)
		case PersonalServiceUpdateBudgetProcedure:
			updateBudget.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PersonalServiceClient is a client for PersonalService.
type PersonalServiceClient interface {
	CreatePersonalExpense(context.Context, *connect.Request[api.CreatePersonalExpenseRequest]) (*connect.Response[api.CreatePersonalExpenseResponse], error)
	ListPersonalExpenses(context.Context, *connect.Request[api.ListPersonalExpensesRequest]) (*connect.Response[api.ListPersonalExpensesResponse], error)
	EditPersonalExpense(context.Context, *connect.Request[api.EditPersonalExpenseRequest]) (*connect.Response[api.EditPersonalExpenseResponse], error)
	DeletePersonalExpense(context.Context, *connect.Request[api.DeletePersonalExpenseRequest]) (*connect.Response[api.DeletePersonalExpenseResponse], error)
	GetBudget(context.Context, *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
}

// NewPersonalServiceClient builds a PersonalService client for the server at baseURL.
func NewPersonalServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PersonalServiceClient {
	opt := connect.WithClientOptions(append([]connect.ClientOption{WithJSON()}, opts...)...)
	return &personalServiceClient{
		createPersonalExpense: connect.NewClient[api.CreatePersonalExpenseRequest, api.CreatePersonalExpenseResponse](httpClient, baseURL+PersonalServiceCreatePersonalExpenseProcedure, opt),
		listPersonalExpenses:  connect.NewClient[api.ListPersonalExpensesRequest, api.ListPersonalExpensesResponse](httpClient, baseURL+PersonalServiceListPersonalExpensesProcedure, opt),
		editPersonalExpense:   connect.NewClient[api.EditPersonalExpenseRequest, api.EditPersonalExpenseResponse](httpClient, baseURL+PersonalServiceEditPersonalExpenseProcedure, opt),
		deletePersonalExpense: connect.NewClient[api.DeletePersonalExpenseRequest, api.DeletePersonalExpenseResponse](httpClient, baseURL+PersonalServiceDeletePersonalExpenseProcedure, opt),
		getBudget:             connect.NewClient[api.GetBudgetRequest, api.GetBudgetResponse](httpClient, baseURL+PersonalServiceGetBudgetProcedure, opt),
		updateBudget:          connect.NewClient[api.UpdateBudgetRequest, api.UpdateBudgetResponse](httpClient, baseURL+PersonalServiceUpdateBudgetProcedure, opt),
	}
}

type personalServiceClient struct {
	createPersonalExpense *connect.Client[api.CreatePersonalExpenseRequest, api.CreatePersonalExpenseResponse]
	listPersonalExpenses  *connect.Client[api.ListPersonalExpensesRequest, api.ListPersonalExpensesResponse]
	editPersonalExpense   *connect.Client[api.EditPersonalExpenseRequest, api.EditPersonalExpenseResponse]
	deletePersonalExpense *connect.Client[api.DeletePersonalExpenseRequest, api.DeletePersonalExpenseResponse]
	getBudget             *connect.Client[api.GetBudgetRequest, api.GetBudgetResponse]
	updateBudget          *connect.Client[api.UpdateBudgetRequest, api.UpdateBudgetResponse]
}

func (c *personalServiceClient) CreatePersonalExpense(ctx context.Context, req *connect.Request[api.CreatePersonalExpenseRequest]) (*connect.Response[api.CreatePersonalExpenseResponse], error) {
	return c.createPersonalExpense.CallUnary(ctx, req)
}

func (c *personalServiceClient) ListPersonalExpenses(ctx context.Context, req *connect.Request[api.ListPersonalExpensesRequest]) (*connect.Response[api.ListPersonalExpensesResponse], error) {
	return c.listPersonalExpenses.CallUnary(ctx, req)
}

func (c *personalServiceClient) EditPersonalExpense(ctx context.Context, req *connect.Request[api.EditPersonalExpenseRequest]) (*connect.Response[api.EditPersonalExpenseResponse], error) {
	return c.editPersonalExpense.CallUnary(ctx, req)
}

func (c *personalServiceClient) DeletePersonalExpense(ctx context.Context, req *connect.Request[api.DeletePersonalExpenseRequest]) (*connect.Response[api.DeletePersonalExpenseResponse], error) {
	return c.deletePersonalExpense.CallUnary(ctx, req)
}

func (c *personalServiceClient) GetBudget(ctx context.Context, req *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error) {
	return c.getBudget.CallUnary(ctx, req)
}

func (c *personalServiceClient) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	return c.updateBudget.CallUnary(ctx, req)
}

// UnimplementedPersonalServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPersonalServiceHandler struct{}

func (UnimplementedPersonalServiceHandler) CreatePersonalExpense(context.Context, *connect.Request[api.CreatePersonalExpenseRequest]) (*connect.Response[api.CreatePersonalExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.PersonalService.CreatePersonalExpense is not implemented"))
}

func (UnimplementedPersonalServiceHandler) ListPersonalExpenses(context.Context, *connect.Request[api.ListPersonalExpensesRequest]) (*connect.Response[api.ListPersonalExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.PersonalService.ListPersonalExpenses is not implemented"))
}

func (UnimplementedPersonalServiceHandler) EditPersonalExpense(context.Context, *connect.Request[api.EditPersonalExpenseRequest]) (*connect.Response[api.EditPersonalExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.PersonalService.EditPersonalExpense is not implemented"))
}

func (UnimplementedPersonalServiceHandler) DeletePersonalExpense(context.Context, *connect.Request[api.DeletePersonalExpenseRequest]) (*connect.Response[api.DeletePersonalExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.PersonalService.DeletePersonalExpense is not implemented"))
}

func (UnimplementedPersonalServiceHandler) GetBudget(context.Context, *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.PersonalService.GetBudget is not implemented"))
}

func (UnimplementedPersonalServiceHandler) UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.PersonalService.UpdateBudget is not implemented"))
}
