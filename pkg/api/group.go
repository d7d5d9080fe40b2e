package api

// Member is a user as seen inside a group.
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Contact     string `json:"contact"`
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	Members   []*Member `json:"members,omitempty"`
	CreatedAt int64     `json:"created_at"`
}

type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID  string `json:"group_id" validate:"required"`
	Username string `json:"username" validate:"required"`
}

type AddMemberResponse struct {
	Group *Group `json:"group"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

type RemoveMemberResponse struct{}
