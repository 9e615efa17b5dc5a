// Package model contains response types for the statistics module.
package model

// ModerationStats aggregates ban and report figures across the platform.
type ModerationStats struct {
	TotalBans     int64            `json:"total_bans"`
	ActiveBans    int64            `json:"active_bans"`
	GlobalBans    int64            `json:"global_bans"`
	GroupBans     int64            `json:"group_bans"`
	AutomaticBans int64            `json:"automatic_bans"`
	ManualBans    int64            `json:"manual_bans"`
	BansByReason  map[string]int64 `json:"bans_by_reason"`
}

// GroupStats aggregates membership figures across all groups.
type GroupStats struct {
	TotalGroups    int64            `json:"total_groups"`
	TotalMembers   int64            `json:"total_members"`
	TotalAdmins    int64            `json:"total_admins"`
	PendingJoins   int64            `json:"pending_joins"`
	GroupsByRule   map[string]int64 `json:"groups_by_rule"`
	LargestGroupID string           `json:"largest_group_id,omitempty"`
}
