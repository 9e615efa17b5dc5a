package model

import "errors"

var (
	// ErrUserExists indicates that a user with the given id already exists.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUserID indicates that the provided user ID is invalid (e.g., empty).
	ErrInvalidUserID = errors.New("invalid user ID")
	// ErrInvalidUsername indicates that the provided username is invalid (e.g., empty).
	ErrInvalidUsername = errors.New("invalid username")
)
