package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/groupspend/pkg/api"
)

const GroupServiceName = "groupspend.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure  = "/groupspend.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure     = "/groupspend.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure   = "/groupspend.v1.GroupService/ListGroups"
	GroupServiceAddMemberProcedure    = "/groupspend.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure = "/groupspend.v1.GroupService/RemoveMember"
)

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for GroupService and returns the
// path prefix to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := connect.WithHandlerOptions(append([]connect.HandlerOption{WithJSON()}, opts...)...)
	createGroup := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opt)
	getGroup := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opt)
	listGroups := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opt)
	addMember := connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opt)
	removeMember := connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opt)

	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroup.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroup.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroups.ServeHTTP(w, r)
		case GroupServiceAddMemberProcedure:
			addMember.ServeHTTP(w, r)
		case GroupServiceRemoveMemberProcedure:
			removeMember.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GroupServiceClient is a client for GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewGroupServiceClient builds a GroupService client for the server at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	opt := connect.WithClientOptions(append([]connect.ClientOption{WithJSON()}, opts...)...)
	return &groupServiceClient{
		createGroup:  connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opt),
		getGroup:     connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opt),
		listGroups:   connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opt),
		addMember:    connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opt),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opt),
	}
}

type groupServiceClient struct {
	createGroup  *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup     *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups   *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.GroupService.AddMember is not implemented"))
}

func (UnimplementedGroupServiceHandler) RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("groupspend.v1.GroupService.RemoveMember is not implemented"))
}
