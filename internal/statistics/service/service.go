// Package service provides business logic layer for the statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	groupRepo "github.com/clatterline/messenger/internal/group/repository"
	"github.com/clatterline/messenger/internal/statistics/model"
	"github.com/clatterline/messenger/internal/statistics/repository"
)

// Service defines the interface for statistics operations.
type Service interface {
	// ModerationStats returns aggregate ban figures.
	ModerationStats(ctx context.Context) (*model.ModerationStats, error)

	// GroupStats returns aggregate membership figures.
	GroupStats(ctx context.Context) (*model.GroupStats, error)
}

type service struct {
	repo   repository.Repository
	groups groupRepo.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, groups groupRepo.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, groups: groups, logger: logger}
}

// ModerationStats returns aggregate ban figures.
func (s *service) ModerationStats(ctx context.Context) (*model.ModerationStats, error) {
	return s.repo.ModerationStats(ctx)
}

// GroupStats returns aggregate membership figures. Membership lists are
// stored as delimited columns, so the breakdown is computed over the
// decoded rows rather than in SQL.
func (s *service) GroupStats(ctx context.Context) (*model.GroupStats, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.GroupStats{
		TotalGroups:  int64(len(groups)),
		GroupsByRule: make(map[string]int64),
	}

	largest := -1
	for _, g := range groups {
		stats.TotalMembers += int64(len(g.MemberIDs))
		stats.TotalAdmins += int64(len(g.AdminIDs))
		stats.PendingJoins += int64(len(g.PendingRequestIDs))
		stats.GroupsByRule[string(g.LastAdminRule)]++
		if len(g.MemberIDs) > largest {
			largest = len(g.MemberIDs)
			stats.LargestGroupID = g.GroupID
		}
	}

	return stats, nil
}
