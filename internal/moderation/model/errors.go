package model

import "errors"

var (
	// ErrBanNotFound indicates that no active ban with the given id exists.
	ErrBanNotFound = errors.New("active ban not found")
	// ErrUserNotFound indicates that a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfBan indicates an attempt to ban oneself.
	ErrSelfBan = errors.New("cannot ban yourself")
	// ErrSelfReport indicates an attempt to report oneself.
	ErrSelfReport = errors.New("cannot report yourself")
	// ErrDuplicateBan indicates an active ban already exists for the target and scope.
	ErrDuplicateBan = errors.New("active ban already exists for this target and scope")
	// ErrDuplicateReport indicates the reporter already reported this target.
	ErrDuplicateReport = errors.New("target already reported by this reporter")
	// ErrInvalidReason indicates an unrecognized or disallowed reason value.
	ErrInvalidReason = errors.New("invalid reason")
	// ErrInvalidScope indicates an unrecognized scope value.
	ErrInvalidScope = errors.New("invalid scope")
	// ErrGroupIDRequired indicates group scope was requested without a group id.
	ErrGroupIDRequired = errors.New("group_id is required for group scope")
	// ErrGroupIDNotAllowed indicates a group id was supplied with global scope.
	ErrGroupIDNotAllowed = errors.New("group_id is not allowed for global scope")
)
