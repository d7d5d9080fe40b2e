package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupspend/pkg/api"
)

func TestRegisterAndLogin(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	alice := ts.register(t, "alice")
	assert.NotEmpty(t, alice.token)
	assert.NotEmpty(t, alice.user.ID)
	assert.Equal(t, "alice", alice.user.Username)

	login, err := ts.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	}))
	require.NoError(t, err)
	assert.Equal(t, alice.user.ID, login.Msg.User.ID)

	me, err := ts.auth.GetCurrentUser(ctx, authed(session{token: login.Msg.Token}, &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Msg.User.Email)
	assert.Equal(t, "alice", me.Msg.User.Username)
}

func TestRegister_Errors(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	ts.register(t, "alice")

	tests := []struct {
		name string
		req  *api.RegisterRequest
		code connect.Code
	}{
		{"duplicate email", &api.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "correct horse"}, connect.CodeAlreadyExists},
		{"duplicate username", &api.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "correct horse"}, connect.CodeAlreadyExists},
		{"weak password", &api.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "short"}, connect.CodeInvalidArgument},
		{"bad email", &api.RegisterRequest{Username: "bob", Email: "not-an-email", Password: "correct horse"}, connect.CodeInvalidArgument},
		{"missing username", &api.RegisterRequest{Email: "bob@example.com", Password: "correct horse"}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.auth.Register(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	ts.register(t, "alice")

	_, err := ts.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetCurrentUser_RequiresToken(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	_, err := ts.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = ts.auth.GetCurrentUser(ctx, authed(session{token: "garbage"}, &api.GetCurrentUserRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}
