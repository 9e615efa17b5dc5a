// Package service provides business logic layer for the user module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/clatterline/messenger/internal/user/model"
	"github.com/clatterline/messenger/internal/user/repository"
)

// Service defines the interface for user business logic operations.
type Service interface {
	// Register creates a new user.
	Register(ctx context.Context, req *model.RegisterUserRequest) (*model.UserResponse, error)

	// Get returns a user by id.
	Get(ctx context.Context, userID string) (*model.UserResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// Register creates a new user.
func (s *service) Register(ctx context.Context, req *model.RegisterUserRequest) (*model.UserResponse, error) {
	s.logger.Debugw("Register called", "user_id", req.UserID)

	if req.UserID == "" {
		return nil, model.ErrInvalidUserID
	}
	if req.Username == "" {
		return nil, model.ErrInvalidUsername
	}

	user, err := s.repo.Create(ctx, req.UserID, req.Username)
	if err != nil {
		s.logger.Errorw("Register failed", "user_id", req.UserID, "error", err)
		return nil, err
	}

	s.logger.Infow("Register completed", "user_id", req.UserID)
	return &model.UserResponse{User: *user}, nil
}

// Get returns a user by id.
func (s *service) Get(ctx context.Context, userID string) (*model.UserResponse, error) {
	if userID == "" {
		return nil, model.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.UserResponse{User: *user}, nil
}
