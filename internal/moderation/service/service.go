// Package service provides business logic layer for the moderation module:
// manual bans, report aggregation with threshold-triggered automatic bans,
// and the access gate consulted by the messaging and group-creation paths.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	groupModel "github.com/clatterline/messenger/internal/group/model"
	"github.com/clatterline/messenger/internal/moderation/model"
	"github.com/clatterline/messenger/internal/moderation/reports"
	"github.com/clatterline/messenger/internal/moderation/repository"
	"github.com/clatterline/messenger/pkg/keymutex"
)

// UserDirectory is the narrow user-existence lookup the engine consumes
// from the identity system. It is implemented by the user repository.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Service defines the interface for moderation business logic operations.
type Service interface {
	// Ban issues a manual ban against a user.
	Ban(ctx context.Context, actorID string, req *model.BanRequest) (*model.BanResponse, error)

	// Unban deactivates an active ban.
	Unban(ctx context.Context, actorID string, req *model.UnbanRequest) (*model.UnbanResponse, error)

	// Report files a report against a user; accumulating reports from
	// distinct reporters up to the threshold triggers an automatic ban.
	Report(ctx context.Context, reporterID string, req *model.ReportRequest) (*model.ReportResponse, error)

	// ValidateAccess is the access gate: it reports whether the user is
	// blocked globally, or within the given group when groupID is set.
	ValidateAccess(ctx context.Context, userID, groupID string) (*model.ValidateAccessResponse, error)

	// IsBanned is the boolean form of ValidateAccess, consumed by the
	// group-creation and messaging paths.
	IsBanned(ctx context.Context, userID, groupID string) (bool, error)

	// ListActiveBans returns all active bans.
	ListActiveBans(ctx context.Context) (*model.ListBansResponse, error)
}

type service struct {
	repo      repository.Repository
	users     UserDirectory
	agg       *reports.Aggregate
	locks     *keymutex.KeyMutex
	threshold int
	logger    *zap.SugaredLogger
}

// New creates a new moderation service instance.
func New(
	repo repository.Repository,
	users UserDirectory,
	agg *reports.Aggregate,
	threshold int,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:      repo,
		users:     users,
		agg:       agg,
		locks:     keymutex.New(),
		threshold: threshold,
		logger:    logger,
	}
}

// validateBanRequest checks reason/scope enum values before any mutation.
func validateBanRequest(req *model.BanRequest) (model.Reason, model.Scope, error) {
	reason := model.Reason(req.Reason)
	if !reason.Valid() {
		return "", "", model.ErrInvalidReason
	}

	scope := model.Scope(req.Scope)
	if !scope.Valid() {
		return "", "", model.ErrInvalidScope
	}
	if scope == model.ScopeGroup && req.GroupID == "" {
		return "", "", model.ErrGroupIDRequired
	}
	if scope == model.ScopeGlobal && req.GroupID != "" {
		return "", "", model.ErrGroupIDNotAllowed
	}

	return reason, scope, nil
}

// Ban issues a manual ban against a user.
func (s *service) Ban(ctx context.Context, actorID string, req *model.BanRequest) (*model.BanResponse, error) {
	s.logger.Debugw("Ban called", "target_user_id", req.TargetUserID, "actor_id", actorID, "scope", req.Scope)

	reason, scope, err := validateBanRequest(req)
	if err != nil {
		return nil, err
	}

	if req.TargetUserID == actorID {
		return nil, model.ErrSelfBan
	}

	for _, id := range []string{actorID, req.TargetUserID} {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			s.logger.Errorw("Ban user lookup failed", "user_id", id, "error", err)
			return nil, err
		}
		if !exists {
			return nil, model.ErrUserNotFound
		}
	}

	// Serialize on the target so two concurrent bans for the same tuple
	// cannot both pass the duplicate check.
	var ban *model.Ban
	err = s.locks.WithLock(req.TargetUserID, func() error {
		existing, err := s.repo.FindActive(ctx, req.TargetUserID, scope, req.GroupID)
		if err != nil {
			return err
		}
		if existing != nil {
			return model.ErrDuplicateBan
		}

		ban = &model.Ban{
			BanID:          uuid.NewString(),
			BannedUserID:   req.TargetUserID,
			BannedByUserID: actorID,
			Reason:         reason,
			Scope:          scope,
			GroupID:        req.GroupID,
			BannedAt:       time.Now(),
			ExpiresAt:      req.ExpiresAt,
			IsActive:       true,
		}
		return s.repo.Create(ctx, ban)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Ban completed",
		"ban_id", ban.BanID,
		"target_user_id", req.TargetUserID,
		"actor_id", actorID,
		"scope", scope,
		"reason", reason,
	)
	return &model.BanResponse{Ban: *ban}, nil
}

// Unban deactivates an active ban.
func (s *service) Unban(ctx context.Context, actorID string, req *model.UnbanRequest) (*model.UnbanResponse, error) {
	s.logger.Debugw("Unban called", "ban_id", req.BanID, "actor_id", actorID)

	ban, err := s.repo.GetActiveByID(ctx, req.BanID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Deactivate(ctx, ban.BanID); err != nil {
		return nil, err
	}
	ban.IsActive = false

	s.logger.Infow("Unban completed", "ban_id", ban.BanID, "actor_id", actorID)
	return &model.UnbanResponse{Ban: *ban}, nil
}

// Report files a report against a user. The reporter set, duplicate check
// and threshold decision are serialized per aggregation key.
func (s *service) Report(
	ctx context.Context,
	reporterID string,
	req *model.ReportRequest,
) (*model.ReportResponse, error) {
	s.logger.Debugw("Report called",
		"target_user_id", req.TargetUserID,
		"reporter_id", reporterID,
		"group_id", req.GroupID,
	)

	reason := model.Reason(req.Reason)
	if !reason.Valid() || reason == model.ReasonMultipleReports {
		// multiple_reports is reserved for the automatic trigger.
		return nil, model.ErrInvalidReason
	}

	if req.TargetUserID == reporterID {
		return nil, model.ErrSelfReport
	}

	exists, err := s.users.Exists(ctx, req.TargetUserID)
	if err != nil {
		s.logger.Errorw("Report user lookup failed", "user_id", req.TargetUserID, "error", err)
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	key := reports.Key(req.TargetUserID, req.GroupID)

	resp := &model.ReportResponse{
		TargetUserID: req.TargetUserID,
		GroupID:      req.GroupID,
		Threshold:    s.threshold,
	}

	err = s.agg.WithKey(key, func() error {
		if s.agg.Has(key, reporterID) {
			return model.ErrDuplicateReport
		}

		count := s.agg.Add(key, reporterID)
		resp.ReportCount = count

		if count < s.threshold {
			return nil
		}

		reporterIDs := s.agg.Reporters(key)

		scope := model.ScopeGlobal
		if req.GroupID != "" {
			scope = model.ScopeGroup
		}

		// Same target lock as the manual ban path, so a concurrent manual
		// ban and a threshold trigger cannot both pass the duplicate check.
		return s.locks.WithLock(req.TargetUserID, func() error {
			existing, err := s.repo.FindActive(ctx, req.TargetUserID, scope, req.GroupID)
			if err != nil {
				return err
			}
			if existing != nil {
				// The target is already banned; the aggregate is still
				// cleared so stale reporters do not linger.
				s.agg.Clear(key)
				resp.AlreadyBanned = true
				return nil
			}

			ban := &model.Ban{
				BanID:          uuid.NewString(),
				BannedUserID:   req.TargetUserID,
				BannedByUserID: model.SystemActorID,
				Reason:         model.ReasonMultipleReports,
				Scope:          scope,
				GroupID:        req.GroupID,
				BannedAt:       time.Now(),
				IsActive:       true,
				ReporterIDs:    groupModel.IDList(reporterIDs),
			}
			if err := s.repo.Create(ctx, ban); err != nil {
				return err
			}
			s.agg.Clear(key)

			resp.AutoBanned = true
			resp.Ban = ban
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Report completed",
		"target_user_id", req.TargetUserID,
		"reporter_id", reporterID,
		"report_count", resp.ReportCount,
		"auto_banned", resp.AutoBanned,
	)
	return resp, nil
}

// ValidateAccess is the access gate consulted before message sends and
// group creation. Read-only; no side effects.
func (s *service) ValidateAccess(ctx context.Context, userID, groupID string) (*model.ValidateAccessResponse, error) {
	ban, err := s.repo.FindBlocking(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	resp := &model.ValidateAccessResponse{
		UserID:  userID,
		GroupID: groupID,
		Allowed: ban == nil,
		Ban:     ban,
	}
	return resp, nil
}

// IsBanned is the boolean form of ValidateAccess.
func (s *service) IsBanned(ctx context.Context, userID, groupID string) (bool, error) {
	ban, err := s.repo.FindBlocking(ctx, userID, groupID)
	if err != nil {
		return false, err
	}
	return ban != nil, nil
}

// ListActiveBans returns all active bans.
func (s *service) ListActiveBans(ctx context.Context) (*model.ListBansResponse, error) {
	bans, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return &model.ListBansResponse{Bans: bans, Total: len(bans)}, nil
}
