package model

import (
	"time"

	"gorm.io/gorm"
)

// LastAdminRule is the policy applied when a group's admin set would
// become empty.
type LastAdminRule string

const (
	// LastAdminRulePromote promotes the first remaining member to admin.
	LastAdminRulePromote LastAdminRule = "promote"
	// LastAdminRuleDelete deletes the group.
	LastAdminRuleDelete LastAdminRule = "delete"
)

// Valid reports whether the rule is a known value.
func (r LastAdminRule) Valid() bool {
	return r == LastAdminRulePromote || r == LastAdminRuleDelete
}

// Group represents a group entity in the system.
// Matches the groups table schema.
//
// Invariants maintained by the service layer: admins are a subset of
// members, the admin set is non-empty for any persisted group, and pending
// requests are disjoint from members.
type Group struct {
	GroupID           string        `gorm:"primaryKey;column:group_id;type:varchar(64)"               json:"group_id"`
	Name              string        `gorm:"column:name;type:varchar(255);not null"                    json:"name"`
	AdminIDs          IDList        `gorm:"column:admin_ids;type:text;not null"                       json:"admin_ids"`
	MemberIDs         IDList        `gorm:"column:member_ids;type:text;not null"                      json:"member_ids"`
	PendingRequestIDs IDList        `gorm:"column:pending_request_ids;type:text;not null"             json:"pending_request_ids"`
	LastAdminRule     LastAdminRule `gorm:"column:last_admin_rule;type:varchar(16);not null"          json:"last_admin_rule"`
	CreatedAt         time.Time     `gorm:"column:created_at;type:timestamptz;not null"               json:"-"`
	UpdatedAt         time.Time     `gorm:"column:updated_at;type:timestamptz;not null"               json:"-"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (g *Group) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return nil
}

// IsAdmin reports whether userID is an administrator of the group.
func (g *Group) IsAdmin(userID string) bool {
	return g.AdminIDs.Contains(userID)
}

// IsMember reports whether userID is a member of the group.
func (g *Group) IsMember(userID string) bool {
	return g.MemberIDs.Contains(userID)
}

// IsPending reports whether userID has a pending join request.
func (g *Group) IsPending(userID string) bool {
	return g.PendingRequestIDs.Contains(userID)
}
