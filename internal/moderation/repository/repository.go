// Package repository provides data access layer for the moderation module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clatterline/messenger/internal/moderation/model"
)

// Repository defines the interface for ban data access operations.
type Repository interface {
	// Create persists a new ban row.
	Create(ctx context.Context, ban *model.Ban) error

	// GetActiveByID finds an active, unexpired ban by id.
	GetActiveByID(ctx context.Context, banID string) (*model.Ban, error)

	// FindActive finds the active, unexpired ban for the exact
	// (banned_user_id, scope, group_id) tuple, or nil when none exists.
	FindActive(ctx context.Context, bannedUserID string, scope model.Scope, groupID string) (*model.Ban, error)

	// FindBlocking finds any active, unexpired ban blocking the user: a
	// global ban always blocks; a group ban blocks when groupID matches.
	FindBlocking(ctx context.Context, userID, groupID string) (*model.Ban, error)

	// Deactivate flips is_active to false. Rows are never deleted.
	Deactivate(ctx context.Context, banID string) error

	// ListActive returns all active, unexpired bans.
	ListActive(ctx context.Context) ([]model.Ban, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new moderation repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// activeScope narrows a query to active, unexpired bans.
func activeScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())
}

// Create persists a new ban row.
func (r *repository) Create(ctx context.Context, ban *model.Ban) error {
	if err := r.db.WithContext(ctx).Create(ban).Error; err != nil {
		r.logger.Errorw("Create database error", "ban_id", ban.BanID, "error", err)
		return err
	}
	return nil
}

// GetActiveByID finds an active, unexpired ban by id.
func (r *repository) GetActiveByID(ctx context.Context, banID string) (*model.Ban, error) {
	var ban model.Ban
	err := activeScope(r.db.WithContext(ctx)).
		Where("ban_id = ?", banID).
		First(&ban).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrBanNotFound
		}
		r.logger.Errorw("GetActiveByID database error", "ban_id", banID, "error", err)
		return nil, err
	}

	return &ban, nil
}

// FindActive finds the active, unexpired ban for the exact tuple.
func (r *repository) FindActive(
	ctx context.Context,
	bannedUserID string,
	scope model.Scope,
	groupID string,
) (*model.Ban, error) {
	var ban model.Ban
	err := activeScope(r.db.WithContext(ctx)).
		Where("banned_user_id = ? AND scope = ? AND group_id = ?", bannedUserID, scope, groupID).
		First(&ban).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("FindActive database error", "banned_user_id", bannedUserID, "error", err)
		return nil, err
	}

	return &ban, nil
}

// FindBlocking finds any active, unexpired ban blocking the user.
func (r *repository) FindBlocking(ctx context.Context, userID, groupID string) (*model.Ban, error) {
	query := activeScope(r.db.WithContext(ctx)).
		Where("banned_user_id = ?", userID)

	if groupID == "" {
		query = query.Where("scope = ?", model.ScopeGlobal)
	} else {
		query = query.Where(
			"(scope = ? OR (scope = ? AND group_id = ?))",
			model.ScopeGlobal, model.ScopeGroup, groupID,
		)
	}

	var ban model.Ban
	err := query.Order("banned_at ASC").First(&ban).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("FindBlocking database error", "user_id", userID, "error", err)
		return nil, err
	}

	return &ban, nil
}

// Deactivate flips is_active to false.
func (r *repository) Deactivate(ctx context.Context, banID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Ban{}).
		Where("ban_id = ? AND is_active = ?", banID, true).
		Update("is_active", false)

	if result.Error != nil {
		r.logger.Errorw("Deactivate database error", "ban_id", banID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrBanNotFound
	}
	return nil
}

// ListActive returns all active, unexpired bans.
func (r *repository) ListActive(ctx context.Context) ([]model.Ban, error) {
	var bans []model.Ban
	err := activeScope(r.db.WithContext(ctx)).
		Order("banned_at DESC").
		Find(&bans).Error

	if err != nil {
		r.logger.Errorw("ListActive database error", "error", err)
		return nil, err
	}

	if bans == nil {
		bans = []model.Ban{}
	}
	return bans, nil
}
