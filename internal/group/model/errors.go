package model

import "errors"

var (
	// ErrGroupNotFound indicates that the requested group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotAdmin indicates that the acting user lacks administrator privilege.
	ErrNotAdmin = errors.New("acting user is not a group administrator")
	// ErrAlreadyMember indicates the user is already a member of the group.
	ErrAlreadyMember = errors.New("user is already a member")
	// ErrAlreadyPending indicates the user already has a pending join request.
	ErrAlreadyPending = errors.New("join request already pending")
	// ErrNoPendingRequest indicates there is no pending request to approve.
	ErrNoPendingRequest = errors.New("no pending join request for user")
	// ErrNotMember indicates the user is not a member of the group.
	ErrNotMember = errors.New("user is not a member")
	// ErrSelfBan indicates an administrator tried to ban themselves.
	ErrSelfBan = errors.New("administrator cannot ban themselves from the group")
	// ErrUserBanned indicates the acting user is blocked by an active ban.
	ErrUserBanned = errors.New("user is blocked by an active ban")
	// ErrInvalidGroupName indicates that the provided group name is invalid.
	ErrInvalidGroupName = errors.New("invalid group name")
	// ErrInvalidLastAdminRule indicates an unrecognized last-admin rule value.
	ErrInvalidLastAdminRule = errors.New("invalid last admin rule")
)
