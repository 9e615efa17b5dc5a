// Package model provides domain models and DTOs for the group module.
package model

// CreateGroupRequest represents the request to create a group.
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
	// MemberIDs optionally seeds the member set. The creator is always
	// added to both members and admins regardless of this list.
	MemberIDs     []string `json:"member_ids"`
	LastAdminRule string   `json:"last_admin_rule"`
}

// UpdateGroupRequest represents the request to update group metadata.
type UpdateGroupRequest struct {
	GroupID       string  `json:"group_id" binding:"required"`
	Name          *string `json:"name"`
	LastAdminRule *string `json:"last_admin_rule"`
}

// DeleteGroupRequest represents the request to delete a group.
type DeleteGroupRequest struct {
	GroupID string `json:"group_id" binding:"required"`
}

// JoinGroupRequest represents the request to ask for group membership.
type JoinGroupRequest struct {
	GroupID string `json:"group_id" binding:"required"`
}

// MembershipDecisionRequest represents an approve or reject of a pending
// join request.
type MembershipDecisionRequest struct {
	GroupID string `json:"group_id" binding:"required"`
	UserID  string `json:"user_id"  binding:"required"`
}

// BanMemberRequest represents the request to remove a member from a group.
type BanMemberRequest struct {
	GroupID string `json:"group_id" binding:"required"`
	UserID  string `json:"user_id"  binding:"required"`
}

// LeaveGroupRequest represents the request to leave a group.
type LeaveGroupRequest struct {
	GroupID string `json:"group_id" binding:"required"`
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	GroupID           string   `json:"group_id"`
	Name              string   `json:"name"`
	AdminIDs          []string `json:"admin_ids"`
	MemberIDs         []string `json:"member_ids"`
	PendingRequestIDs []string `json:"pending_request_ids"`
	LastAdminRule     string   `json:"last_admin_rule"`
}

// NewGroupResponse builds a GroupResponse from a Group.
func NewGroupResponse(g *Group) *GroupResponse {
	return &GroupResponse{
		GroupID:           g.GroupID,
		Name:              g.Name,
		AdminIDs:          g.AdminIDs.Clone(),
		MemberIDs:         g.MemberIDs.Clone(),
		PendingRequestIDs: g.PendingRequestIDs.Clone(),
		LastAdminRule:     string(g.LastAdminRule),
	}
}

// LeaveGroupResponse represents the outcome of leaving a group.
type LeaveGroupResponse struct {
	GroupID string `json:"group_id"`
	// GroupDeleted is true when succession destroyed the group.
	GroupDeleted bool `json:"group_deleted"`
	// PromotedAdminID is set when succession promoted a member.
	PromotedAdminID string `json:"promoted_admin_id,omitempty"`
}

// IsMemberResponse represents the membership query result.
type IsMemberResponse struct {
	GroupID  string `json:"group_id"`
	UserID   string `json:"user_id"`
	IsMember bool   `json:"is_member"`
}
