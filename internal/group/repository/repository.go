// Package repository provides data access layer for the group module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clatterline/messenger/internal/group/model"
)

// Repository defines the interface for group data access operations.
type Repository interface {
	// Create persists a new group.
	Create(ctx context.Context, group *model.Group) error

	// GetByID finds a group by group_id.
	GetByID(ctx context.Context, groupID string) (*model.Group, error)

	// Save rewrites the full group row.
	Save(ctx context.Context, group *model.Group) error

	// Delete removes a group row.
	Delete(ctx context.Context, groupID string) error

	// List returns all groups.
	List(ctx context.Context) ([]model.Group, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new group repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a new group.
func (r *repository) Create(ctx context.Context, group *model.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		r.logger.Errorw("Create database error", "group_id", group.GroupID, "error", err)
		return err
	}
	return nil
}

// GetByID finds a group by group_id.
func (r *repository) GetByID(ctx context.Context, groupID string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		First(&group).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGroupNotFound
		}
		r.logger.Errorw("GetByID database error", "group_id", groupID, "error", err)
		return nil, err
	}

	return &group, nil
}

// Save rewrites the full group row.
func (r *repository) Save(ctx context.Context, group *model.Group) error {
	result := r.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("group_id = ?", group.GroupID).
		Updates(map[string]interface{}{
			"name":                group.Name,
			"admin_ids":           group.AdminIDs,
			"member_ids":          group.MemberIDs,
			"pending_request_ids": group.PendingRequestIDs,
			"last_admin_rule":     group.LastAdminRule,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		r.logger.Errorw("Save database error", "group_id", group.GroupID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrGroupNotFound
	}
	return nil
}

// Delete removes a group row.
func (r *repository) Delete(ctx context.Context, groupID string) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&model.Group{})

	if result.Error != nil {
		r.logger.Errorw("Delete database error", "group_id", groupID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrGroupNotFound
	}
	return nil
}

// List returns all groups.
func (r *repository) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&groups).Error

	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}

	if groups == nil {
		groups = []model.Group{}
	}
	return groups, nil
}
