// Package model provides domain models and DTOs for the user module.
package model

// RegisterUserRequest represents the request to register a user.
type RegisterUserRequest struct {
	UserID   string `json:"user_id"  binding:"required"`
	Username string `json:"username" binding:"required"`
}

// UserResponse represents the response after registering or getting a user.
type UserResponse struct {
	User User `json:"user"`
}
