package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/groupspend/internal/auth"
	"github.com/mmynk/groupspend/internal/events"
	"github.com/mmynk/groupspend/internal/middleware"
	"github.com/mmynk/groupspend/internal/storage/sqlite"
	"github.com/mmynk/groupspend/pkg/api"
	"github.com/mmynk/groupspend/pkg/api/apiconnect"
)

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ExpenseEvent
}

func (p *recordingPublisher) PublishExpense(_ context.Context, e events.ExpenseEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) kinds() []events.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]events.Kind, len(p.events))
	for i, e := range p.events {
		kinds[i] = e.Kind
	}
	return kinds
}

type testServer struct {
	auth      apiconnect.AuthServiceClient
	groups    apiconnect.GroupServiceClient
	expenses  apiconnect.ExpenseServiceClient
	personal  apiconnect.PersonalServiceClient
	store     *sqlite.SQLiteStore
	publisher *recordingPublisher
}

var fixedNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

// setupTestServer serves every service over httptest against a
// temporary SQLite database, behind the real auth interceptor.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	publisher := &recordingPublisher{}

	expenseSvc := NewExpenseService(store, publisher)
	expenseSvc.now = func() time.Time { return fixedNow }
	personalSvc := NewPersonalService(store)
	personalSvc.now = func() time.Time { return fixedNow }

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(expenseSvc, interceptors))
	mux.Handle(apiconnect.NewPersonalServiceHandler(personalSvc, interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{
		auth:      apiconnect.NewAuthServiceClient(server.Client(), server.URL),
		groups:    apiconnect.NewGroupServiceClient(server.Client(), server.URL),
		expenses:  apiconnect.NewExpenseServiceClient(server.Client(), server.URL),
		personal:  apiconnect.NewPersonalServiceClient(server.Client(), server.URL),
		store:     store,
		publisher: publisher,
	}
}

// session is a registered user and their bearer token.
type session struct {
	user  *api.User
	token string
}

func (ts *testServer) register(t *testing.T, username string) session {
	t.Helper()
	resp, err := ts.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse",
	}))
	require.NoError(t, err)
	return session{user: resp.Msg.User, token: resp.Msg.Token}
}

// authed builds a request carrying s's bearer token.
func authed[T any](s session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

func assertCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, connect.CodeOf(err), "error: %v", err)
}
