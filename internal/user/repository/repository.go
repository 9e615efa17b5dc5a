// Package repository provides data access layer for the user module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clatterline/messenger/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create creates a new user.
	Create(ctx context.Context, userID, username string) (*model.User, error)

	// GetByID finds user by user_id.
	GetByID(ctx context.Context, userID string) (*model.User, error)

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, userID string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create creates a new user.
func (r *repository) Create(ctx context.Context, userID, username string) (*model.User, error) {
	now := time.Now()
	user := &model.User{
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isDuplicateError(err) {
			r.logger.Debugw("Create user already exists", "user_id", userID)
			return nil, model.ErrUserExists
		}
		r.logger.Errorw("Create database error", "user_id", userID, "error", err)
		return nil, err
	}

	return user, nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// GetByID finds user by user_id.
func (r *repository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByID database error", "user_id", userID, "error", err)
		return nil, err
	}

	return &user, nil
}

// Exists reports whether a user with the given id exists.
func (r *repository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("Exists database error", "user_id", userID, "error", err)
		return false, err
	}

	return count > 0, nil
}
