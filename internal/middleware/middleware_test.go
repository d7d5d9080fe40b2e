package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupspend/internal/auth"
	"github.com/mmynk/groupspend/internal/models"
	"github.com/mmynk/groupspend/pkg/api"
	"github.com/mmynk/groupspend/pkg/api/apiconnect"
)

// whoAmI answers GetCurrentUser from the request context only.
type whoAmI struct {
	apiconnect.UnimplementedAuthServiceHandler
	err error
}

func (w whoAmI) GetCurrentUser(ctx context.Context, _ *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	if w.err != nil {
		return nil, w.err
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: &api.User{ID: GetUserID(ctx), Username: GetUsername(ctx)}}), nil
}

func (w whoAmI) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return connect.NewResponse(&api.LoginResponse{}), nil
}

func serve(t *testing.T, h apiconnect.AuthServiceHandler, interceptors ...connect.Interceptor) apiconnect.AuthServiceClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(h, connect.WithInterceptors(interceptors...)))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return apiconnect.NewAuthServiceClient(server.Client(), server.URL)
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	client := serve(t, whoAmI{}, RequireAuth(jwtManager))
	ctx := context.Background()

	token, err := jwtManager.Generate(&models.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	req := connect.NewRequest(&api.GetCurrentUserRequest{})
	req.Header().Set("Authorization", "Bearer "+token)
	resp, err := client.GetCurrentUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.Msg.User.ID)
	assert.Equal(t, "alice", resp.Msg.User.Username)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-jwt"} {
		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		if header != "" {
			req.Header().Set("Authorization", header)
		}
		_, err := client.GetCurrentUser(ctx, req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err), "header %q", header)
	}

	// Login is public.
	_, err = client.Login(ctx, connect.NewRequest(&api.LoginRequest{}))
	assert.NoError(t, err)
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rpcErr := connect.NewError(connect.CodeInvalidArgument, errors.New("sum is 80"))
	rpcErr.Meta().Set(SplitReasonHeader, "sum_mismatch")
	client := serve(t, whoAmI{err: rpcErr}, LoggingInterceptor(logger))

	_, err := client.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "GetCurrentUser")
	assert.Contains(t, out, "split_reason=sum_mismatch")
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	client := serve(t, whoAmI{}, metrics.Interceptor())
	ctx := context.Background()

	_, err := client.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	_, err = client.Register(ctx, connect.NewRequest(&api.RegisterRequest{}))
	require.Error(t, err)

	expected := `
# HELP groupspend_rpc_requests_total RPC calls by procedure and Connect code.
# TYPE groupspend_rpc_requests_total counter
groupspend_rpc_requests_total{code="ok",procedure="/groupspend.v1.AuthService/GetCurrentUser"} 1
groupspend_rpc_requests_total{code="unimplemented",procedure="/groupspend.v1.AuthService/Register"} 1
`
	require.NoError(t, testutil.CollectAndCompare(metrics.requests, strings.NewReader(expected)))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration))
}
