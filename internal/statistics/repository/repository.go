// Package repository provides read-only aggregate queries for statistics.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	banModel "github.com/clatterline/messenger/internal/moderation/model"
	"github.com/clatterline/messenger/internal/statistics/model"
)

// Repository defines the interface for statistics queries.
type Repository interface {
	// ModerationStats computes ban aggregates with SQL counts.
	ModerationStats(ctx context.Context) (*model.ModerationStats, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// ModerationStats computes ban aggregates with SQL counts.
func (r *repository) ModerationStats(ctx context.Context) (*model.ModerationStats, error) {
	stats := &model.ModerationStats{BansByReason: make(map[string]int64)}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&banModel.Ban{})
	}

	counts := []struct {
		dest  *int64
		build func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalBans, func(q *gorm.DB) *gorm.DB { return q }},
		{&stats.ActiveBans, func(q *gorm.DB) *gorm.DB { return q.Where("is_active = ?", true) }},
		{&stats.GlobalBans, func(q *gorm.DB) *gorm.DB { return q.Where("scope = ?", banModel.ScopeGlobal) }},
		{&stats.GroupBans, func(q *gorm.DB) *gorm.DB { return q.Where("scope = ?", banModel.ScopeGroup) }},
		{&stats.AutomaticBans, func(q *gorm.DB) *gorm.DB {
			return q.Where("banned_by_user_id = ?", banModel.SystemActorID)
		}},
		{&stats.ManualBans, func(q *gorm.DB) *gorm.DB {
			return q.Where("banned_by_user_id <> ?", banModel.SystemActorID)
		}},
	}
	for _, c := range counts {
		if err := c.build(base()).Count(c.dest).Error; err != nil {
			r.logger.Errorw("ModerationStats count failed", "error", err)
			return nil, err
		}
	}

	var byReason []struct {
		Reason string
		Count  int64
	}
	err := base().
		Select("reason, count(*) as count").
		Group("reason").
		Scan(&byReason).Error
	if err != nil {
		r.logger.Errorw("ModerationStats reason breakdown failed", "error", err)
		return nil, err
	}
	for _, row := range byReason {
		stats.BansByReason[row.Reason] = row.Count
	}

	return stats, nil
}
