package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/groupspend/pkg/api"
)

// newGroup creates a group owned by owner and adds the given members.
func (ts *testServer) newGroup(t *testing.T, owner session, name string, members ...session) *api.Group {
	t.Helper()
	ctx := context.Background()

	resp, err := ts.groups.CreateGroup(ctx, authed(owner, &api.CreateGroupRequest{Name: name}))
	require.NoError(t, err)
	group := resp.Msg.Group
	for _, m := range members {
		added, err := ts.groups.AddMember(ctx, authed(owner, &api.AddMemberRequest{
			GroupID:  group.ID,
			Username: m.user.Username,
		}))
		require.NoError(t, err)
		group = added.Msg.Group
	}
	return group
}

func TestCreateGroup(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")

	resp, err := ts.groups.CreateGroup(context.Background(), authed(alice, &api.CreateGroupRequest{Name: "Roommates"}))
	require.NoError(t, err)

	group := resp.Msg.Group
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Roommates", group.Name)
	assert.Equal(t, alice.user.ID, group.OwnerID)
	assert.NotZero(t, group.CreatedAt)
	require.Len(t, group.Members, 1)
	assert.Equal(t, "alice", group.Members[0].DisplayName)
	assert.Equal(t, "alice@example.com", group.Members[0].Contact)
}

func TestCreateGroup_Validation(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")

	_, err := ts.groups.CreateGroup(context.Background(), authed(alice, &api.CreateGroupRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = ts.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "x"}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestAddMemberAndGetGroup(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	group := ts.newGroup(t, alice, "Trip", bob)
	require.Len(t, group.Members, 2)
	assert.Equal(t, "alice", group.Members[0].DisplayName)
	assert.Equal(t, "bob", group.Members[1].DisplayName)

	// bob can now read the group
	got, err := ts.groups.GetGroup(ctx, authed(bob, &api.GetGroupRequest{GroupID: group.ID}))
	require.NoError(t, err)
	assert.Equal(t, "Trip", got.Msg.Group.Name)

	_, err = ts.groups.AddMember(ctx, authed(alice, &api.AddMemberRequest{GroupID: group.ID, Username: "bob"}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = ts.groups.AddMember(ctx, authed(alice, &api.AddMemberRequest{GroupID: group.ID, Username: "nobody"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetGroup_Access(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")
	mallory := ts.register(t, "mallory")
	group := ts.newGroup(t, alice, "Private")

	_, err := ts.groups.GetGroup(ctx, authed(mallory, &api.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = ts.groups.GetGroup(ctx, authed(alice, &api.GetGroupRequest{GroupID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListGroups(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	ts.newGroup(t, alice, "Roommates", bob)
	ts.newGroup(t, alice, "Work")

	resp, err := ts.groups.ListGroups(ctx, authed(alice, &api.ListGroupsRequest{}))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Groups, 2)

	resp, err = ts.groups.ListGroups(ctx, authed(bob, &api.ListGroupsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Groups, 1)
	assert.Equal(t, "Roommates", resp.Msg.Groups[0].Name)
}

func TestRemoveMember(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")
	carol := ts.register(t, "carol")
	group := ts.newGroup(t, alice, "Flat", bob, carol)

	t.Run("member cannot remove another member", func(t *testing.T) {
		_, err := ts.groups.RemoveMember(ctx, authed(bob, &api.RemoveMemberRequest{GroupID: group.ID, UserID: carol.user.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		_, err := ts.groups.RemoveMember(ctx, authed(alice, &api.RemoveMemberRequest{GroupID: group.ID, UserID: alice.user.ID}))
		assertCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("member leaves", func(t *testing.T) {
		_, err := ts.groups.RemoveMember(ctx, authed(bob, &api.RemoveMemberRequest{GroupID: group.ID, UserID: bob.user.ID}))
		require.NoError(t, err)
	})

	t.Run("owner removes member", func(t *testing.T) {
		_, err := ts.groups.RemoveMember(ctx, authed(alice, &api.RemoveMemberRequest{GroupID: group.ID, UserID: carol.user.ID}))
		require.NoError(t, err)

		got, err := ts.groups.GetGroup(ctx, authed(alice, &api.GetGroupRequest{GroupID: group.ID}))
		require.NoError(t, err)
		assert.Len(t, got.Msg.Group.Members, 1)
	})
}
