package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupspend/internal/models"
	"github.com/mmynk/groupspend/internal/storage"
	"github.com/mmynk/groupspend/pkg/api"
	"github.com/mmynk/groupspend/pkg/api/apiconnect"
)

var (
	errOwnerLeaves     = errors.New("the group owner cannot be removed")
	errOwnerOnlyRemove = errors.New("only the group owner can remove other members")
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received", "name", req.Msg.Name, "owner_id", userID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group := &models.Group{Name: req.Msg.Name, OwnerID: userID}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, storeError(err)
	}

	created, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		slog.Error("Failed to fetch created group", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(created)}), nil
}

// GetGroup retrieves a group and its roster. Only members may read it.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, _, err := s.groupForMember(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "members_count", len(group.Members))
	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups returns the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received", "user_id", userID)

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, storeError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMember adds a registered user, looked up by username, to the group.
// Any member may add others.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "username", req.Msg.Username)

	group, _, err := s.groupForMember(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Msg.Username)
	if err != nil {
		slog.Warn("AddMember: user lookup failed", "username", req.Msg.Username, "error", err)
		return nil, storeError(err)
	}

	if err := s.store.AddGroupMember(ctx, group.ID, user.ID); err != nil {
		slog.Error("AddMember failed", "group_id", group.ID, "user_id", user.ID, "error", err)
		return nil, storeError(err)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError(err)
	}

	slog.Info("Member added", "group_id", group.ID, "user_id", user.ID)
	return connect.NewResponse(&api.AddMemberResponse{Group: toAPIGroup(updated)}), nil
}

// RemoveMember removes a member. Members may remove themselves; the owner may
// remove anyone but themselves.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)

	group, callerID, err := s.groupForMember(ctx, req.Msg, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Msg.UserID == group.OwnerID:
		return nil, connect.NewError(connect.CodeFailedPrecondition, errOwnerLeaves)
	case req.Msg.UserID != callerID && callerID != group.OwnerID:
		return nil, connect.NewError(connect.CodePermissionDenied, errOwnerOnlyRemove)
	}

	if err := s.store.RemoveGroupMember(ctx, group.ID, req.Msg.UserID); err != nil {
		slog.Error("RemoveMember failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Member removed", "group_id", group.ID, "user_id", req.Msg.UserID)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// groupForMember validates msg, loads groupID and checks the caller is a
// member. It returns the group and the caller's ID.
func (s *GroupService) groupForMember(ctx context.Context, msg any, groupID string) (*models.Group, string, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, "", err
	}
	if err := validateRequest(msg); err != nil {
		return nil, "", err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("Group lookup failed", "group_id", groupID, "error", err)
		return nil, "", storeError(err)
	}
	if !group.HasMember(userID) {
		return nil, "", connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return group, userID, nil
}
