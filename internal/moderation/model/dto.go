// Package model provides domain models and DTOs for the moderation module.
package model

import "time"

// BanRequest represents the request to issue a manual ban.
type BanRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
	Reason       string `json:"reason"         binding:"required"`
	Scope        string `json:"scope"          binding:"required"`
	GroupID      string `json:"group_id"`
	// ExpiresAt is optional; absent means the ban is indefinite.
	ExpiresAt *time.Time `json:"expires_at"`
}

// BanResponse represents the response after issuing a ban.
type BanResponse struct {
	Ban Ban `json:"ban"`
}

// UnbanRequest represents the request to lift a ban.
type UnbanRequest struct {
	BanID string `json:"ban_id" binding:"required"`
}

// UnbanResponse represents the response after lifting a ban.
type UnbanResponse struct {
	Ban Ban `json:"ban"`
}

// ReportRequest represents the request to report a user.
type ReportRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
	Reason       string `json:"reason"         binding:"required"`
	GroupID      string `json:"group_id"`
}

// ReportResponse represents the outcome of filing a report.
type ReportResponse struct {
	TargetUserID string `json:"target_user_id"`
	GroupID      string `json:"group_id,omitempty"`
	// ReportCount is the number of distinct reporters accumulated so far;
	// it reads as "ReportCount of Threshold".
	ReportCount int `json:"report_count"`
	Threshold   int `json:"threshold"`
	// AutoBanned is true when this report triggered an automatic ban.
	AutoBanned bool `json:"auto_banned"`
	// AlreadyBanned is true when the threshold fired but an active ban for
	// the target already existed, so no new row was created.
	AlreadyBanned bool `json:"already_banned,omitempty"`
	Ban           *Ban `json:"ban,omitempty"`
}

// ValidateAccessResponse represents the access gate verdict.
type ValidateAccessResponse struct {
	UserID  string `json:"user_id"`
	GroupID string `json:"group_id,omitempty"`
	Allowed bool   `json:"allowed"`
	// Ban is the blocking ban when Allowed is false.
	Ban *Ban `json:"ban,omitempty"`
}

// ListBansResponse represents the active ban listing.
type ListBansResponse struct {
	Bans  []Ban `json:"bans"`
	Total int   `json:"total"`
}
