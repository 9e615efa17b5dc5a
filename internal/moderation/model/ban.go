package model

import (
	"time"

	groupModel "github.com/clatterline/messenger/internal/group/model"
)

// SystemActorID is the sentinel actor recorded on automatic bans.
const SystemActorID = "system"

// Reason is the enumerated ban/report category.
type Reason string

const (
	// ReasonSpam marks spam behavior.
	ReasonSpam Reason = "spam"
	// ReasonHarassment marks harassment.
	ReasonHarassment Reason = "harassment"
	// ReasonMultipleReports marks threshold-triggered automatic bans.
	ReasonMultipleReports Reason = "multiple_reports"
	// ReasonAdminDecision marks a manual administrator decision.
	ReasonAdminDecision Reason = "admin_decision"
)

// Valid reports whether the reason is a known value.
func (r Reason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonHarassment, ReasonMultipleReports, ReasonAdminDecision:
		return true
	}
	return false
}

// Scope determines whether a ban applies platform-wide or within one group.
type Scope string

const (
	// ScopeGlobal applies platform-wide.
	ScopeGlobal Scope = "global"
	// ScopeGroup applies within a single group.
	ScopeGroup Scope = "group"
)

// Valid reports whether the scope is a known value.
func (s Scope) Valid() bool {
	return s == ScopeGlobal || s == ScopeGroup
}

// Ban represents a ban entity in the system.
// Matches the bans table schema. Rows are never deleted; an unban flips
// IsActive to false.
type Ban struct {
	BanID          string            `gorm:"primaryKey;column:ban_id;type:varchar(64)"                               json:"ban_id"`
	BannedUserID   string            `gorm:"column:banned_user_id;type:varchar(255);not null;index:idx_bans_user"    json:"banned_user_id"`
	BannedByUserID string            `gorm:"column:banned_by_user_id;type:varchar(255);not null"                     json:"banned_by_user_id"`
	Reason         Reason            `gorm:"column:reason;type:varchar(32);not null"                                 json:"reason"`
	Scope          Scope             `gorm:"column:scope;type:varchar(16);not null"                                  json:"scope"`
	GroupID        string            `gorm:"column:group_id;type:varchar(64)"                                        json:"group_id,omitempty"`
	BannedAt       time.Time         `gorm:"column:banned_at;type:timestamptz;not null"                              json:"banned_at"`
	ExpiresAt      *time.Time        `gorm:"column:expires_at;type:timestamptz"                                      json:"expires_at,omitempty"`
	IsActive       bool              `gorm:"column:is_active;type:boolean;not null;default:true;index:idx_bans_user" json:"is_active"`
	ReporterIDs    groupModel.IDList `gorm:"column:reporter_ids;type:text"                                           json:"reporter_ids,omitempty"`
}

// TableName specifies the table name for GORM.
func (Ban) TableName() string {
	return "bans"
}

// Expired reports whether the ban has an expiry in the past.
func (b *Ban) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}
