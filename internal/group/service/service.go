// Package service provides business logic layer for the group module.
//
// Every mutation serializes on a per-group mutex around the whole
// load-mutate-save sequence and runs the write inside a transaction, so two
// concurrent operations on the same group cannot overwrite each other's
// snapshot.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clatterline/messenger/internal/group/model"
	"github.com/clatterline/messenger/internal/group/repository"
	"github.com/clatterline/messenger/pkg/keymutex"
)

// AccessGate is the read-only ban check consulted before group creation.
// It is implemented by the moderation service.
type AccessGate interface {
	// IsBanned reports whether userID is blocked globally, or within the
	// given group when groupID is non-empty.
	IsBanned(ctx context.Context, userID, groupID string) (bool, error)
}

// Service defines the interface for group business logic operations.
type Service interface {
	// Create creates a new group with the creator as member and admin.
	Create(ctx context.Context, creatorID string, req *model.CreateGroupRequest) (*model.GroupResponse, error)

	// Get returns a group by id.
	Get(ctx context.Context, groupID string) (*model.GroupResponse, error)

	// Update changes group metadata. Admin only.
	Update(ctx context.Context, actorID string, req *model.UpdateGroupRequest) (*model.GroupResponse, error)

	// Delete destroys a group. Admin only.
	Delete(ctx context.Context, actorID string, req *model.DeleteGroupRequest) error

	// Join files a pending membership request.
	Join(ctx context.Context, userID string, req *model.JoinGroupRequest) (*model.GroupResponse, error)

	// Approve moves a pending request into the member set. Admin only.
	Approve(ctx context.Context, approverID string, req *model.MembershipDecisionRequest) (*model.GroupResponse, error)

	// Reject drops a pending request. Admin only; idempotent.
	Reject(ctx context.Context, approverID string, req *model.MembershipDecisionRequest) (*model.GroupResponse, error)

	// BanMember removes a member from the group. Admin only, no self-target.
	BanMember(ctx context.Context, adminID string, req *model.BanMemberRequest) (*model.GroupResponse, error)

	// Leave removes the caller from the group, applying admin succession
	// when the last administrator departs.
	Leave(ctx context.Context, userID string, req *model.LeaveGroupRequest) (*model.LeaveGroupResponse, error)

	// IsMember reports whether userID currently belongs to the group.
	IsMember(ctx context.Context, groupID, userID string) (*model.IsMemberResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	gate   AccessGate
	locks  *keymutex.KeyMutex
	logger *zap.SugaredLogger
}

// New creates a new group service instance.
func New(
	repo repository.Repository,
	db *gorm.DB,
	gate AccessGate,
	locks *keymutex.KeyMutex,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:   repo,
		db:     db,
		gate:   gate,
		locks:  locks,
		logger: logger,
	}
}

// Create creates a new group with the creator as member and admin.
func (s *service) Create(
	ctx context.Context,
	creatorID string,
	req *model.CreateGroupRequest,
) (*model.GroupResponse, error) {
	s.logger.Debugw("Create called", "creator_id", creatorID, "name", req.Name)

	if req.Name == "" {
		return nil, model.ErrInvalidGroupName
	}

	rule := model.LastAdminRulePromote
	if req.LastAdminRule != "" {
		rule = model.LastAdminRule(req.LastAdminRule)
		if !rule.Valid() {
			return nil, model.ErrInvalidLastAdminRule
		}
	}

	banned, err := s.gate.IsBanned(ctx, creatorID, "")
	if err != nil {
		s.logger.Errorw("Create access gate error", "creator_id", creatorID, "error", err)
		return nil, err
	}
	if banned {
		return nil, model.ErrUserBanned
	}

	group := &model.Group{
		GroupID:           uuid.NewString(),
		Name:              req.Name,
		AdminIDs:          model.IDList{},
		MemberIDs:         model.IDList{},
		PendingRequestIDs: model.IDList{},
		LastAdminRule:     rule,
	}

	// The creator goes into both sets unconditionally, so the admin set is
	// never empty at creation even if the supplied list omits them.
	group.MemberIDs.Add(creatorID)
	group.AdminIDs.Add(creatorID)
	for _, id := range req.MemberIDs {
		group.MemberIDs.Add(id)
	}

	if err := s.repo.Create(ctx, group); err != nil {
		s.logger.Errorw("Create failed", "creator_id", creatorID, "error", err)
		return nil, err
	}

	s.logger.Infow("Create completed", "group_id", group.GroupID, "creator_id", creatorID)
	return model.NewGroupResponse(group), nil
}

// Get returns a group by id.
func (s *service) Get(ctx context.Context, groupID string) (*model.GroupResponse, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return model.NewGroupResponse(group), nil
}

// Update changes group metadata. Admin only.
func (s *service) Update(
	ctx context.Context,
	actorID string,
	req *model.UpdateGroupRequest,
) (*model.GroupResponse, error) {
	s.logger.Debugw("Update called", "group_id", req.GroupID, "actor_id", actorID)

	if req.Name != nil && *req.Name == "" {
		return nil, model.ErrInvalidGroupName
	}
	if req.LastAdminRule != nil && !model.LastAdminRule(*req.LastAdminRule).Valid() {
		return nil, model.ErrInvalidLastAdminRule
	}

	var result *model.GroupResponse
	err := s.mutate(ctx, req.GroupID, func(txRepo repository.Repository, group *model.Group) error {
		if !group.IsAdmin(actorID) {
			return model.ErrNotAdmin
		}
		if req.Name != nil {
			group.Name = *req.Name
		}
		if req.LastAdminRule != nil {
			group.LastAdminRule = model.LastAdminRule(*req.LastAdminRule)
		}
		if err := txRepo.Save(ctx, group); err != nil {
			return err
		}
		result = model.NewGroupResponse(group)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Update completed", "group_id", req.GroupID, "actor_id", actorID)
	return result, nil
}

// Delete destroys a group. Admin only.
func (s *service) Delete(ctx context.Context, actorID string, req *model.DeleteGroupRequest) error {
	s.logger.Debugw("Delete called", "group_id", req.GroupID, "actor_id", actorID)

	err := s.mutate(ctx, req.GroupID, func(txRepo repository.Repository, group *model.Group) error {
		if !group.IsAdmin(actorID) {
			return model.ErrNotAdmin
		}
		return txRepo.Delete(ctx, group.GroupID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Delete completed", "group_id", req.GroupID, "actor_id", actorID)
	return nil
}

// Join files a pending membership request.
func (s *service) Join(
	ctx context.Context,
	userID string,
	req *model.JoinGroupRequest,
) (*model.GroupResponse, error) {
	s.logger.Debugw("Join called", "group_id", req.GroupID, "user_id", userID)

	var result *model.GroupResponse
	err := s.mutate(ctx, req.GroupID, func(txRepo repository.Repository, group *model.Group) error {
		if group.IsMember(userID) {
			return model.ErrAlreadyMember
		}
		if group.IsPending(userID) {
			return model.ErrAlreadyPending
		}
		group.PendingRequestIDs.Add(userID)
		if err := txRepo.Save(ctx, group); err != nil {
			return err
		}
		result = model.NewGroupResponse(group)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Join completed", "group_id", req.GroupID, "user_id", userID)
	return result, nil
}

// Approve moves a pending request into the member set. Admin only.
func (s *service) Approve(
	ctx context.Context,
	approverID string,
	req *model.MembershipDecisionRequest,
) (*model.GroupResponse, error) {
	s.logger.Debugw("Approve called", "group_id", req.GroupID, "user_id", req.UserID, "approver_id", approverID)

	var result *model.GroupResponse
	err := s.mutate(ctx, req.GroupID, func(txRepo repository.Repository, group *model.Group) error {
		if !group.IsAdmin(approverID) {
			return model.ErrNotAdmin
		}
		if !group.IsPending(req.UserID) {
			return model.ErrNoPendingRequest
		}
		group.PendingRequestIDs.Remove(req.UserID)
		group.MemberIDs.Add(req.UserID)
		if err := txRepo.Save(ctx, group); err != nil {
			return err
		}
		result = model.NewGroupResponse(group)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Approve completed", "group_id", req.GroupID, "user_id", req.UserID)
	return result, nil
}

// Reject drops a pending request. Admin only. Rejecting a user with no
// pending request is a no-op success, so repeated rejects are idempotent.
func (s *service) Reject(
	ctx context.Context,
	approverID string,
	req *model.MembershipDecisionRequest,
) (*model.GroupResponse, error) {
	s.logger.Debugw("Reject called", "group_id", req.GroupID, "user_id", req.UserID, "approver_id", approverID)

	var result *model.GroupResponse
	err := s.mutate(ctx, req.GroupID, func(txRepo repository.Repository, group *model.Group) error {
		if !group.IsAdmin(approverID) {
			return model.ErrNotAdmin
		}
		if group.PendingRequestIDs.Remove(req.UserID) {
			if err := txRepo.Save(ctx, group); err != nil {
				return err
			}
		}
		result = model.NewGroupResponse(group)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Reject completed", "group_id", req.GroupID, "user_id", req.UserID)
	return result, nil
}

// BanMember removes a member from the group. The acting admin cannot target
// themselves, which also means this operation can never empty the admin
// set: the only member whose removal could do that is the sole admin, and
// the sole admin can only be targeted by themselves.
func (s *service) BanMember(
	ctx context.Context,
	adminID string,
	req *model.BanMemberRequest,
) (*model.GroupResponse, error) {
	s.logger.Debugw("BanMember called", "group_id", req.GroupID, "user_id", req.UserID, "admin_id", adminID)

	var result *model.GroupResponse
	err := s.mutate(ctx, req.GroupID, func(txRepo repository.Repository, group *model.Group) error {
		if !group.IsAdmin(adminID) {
			return model.ErrNotAdmin
		}
		if adminID == req.UserID {
			return model.ErrSelfBan
		}
		if !group.IsMember(req.UserID) {
			return model.ErrNotMember
		}
		group.MemberIDs.Remove(req.UserID)
		group.AdminIDs.Remove(req.UserID)
		if err := txRepo.Save(ctx, group); err != nil {
			return err
		}
		result = model.NewGroupResponse(group)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("BanMember completed", "group_id", req.GroupID, "user_id", req.UserID, "admin_id", adminID)
	return result, nil
}

// Leave removes the caller from the group. When the caller is the last
// administrator the succession policy runs before the removal is finalized;
// if it deletes the group no further write happens on the row.
func (s *service) Leave(
	ctx context.Context,
	userID string,
	req *model.LeaveGroupRequest,
) (*model.LeaveGroupResponse, error) {
	s.logger.Debugw("Leave called", "group_id", req.GroupID, "user_id", userID)

	var result *model.LeaveGroupResponse
	err := s.mutate(ctx, req.GroupID, func(txRepo repository.Repository, group *model.Group) error {
		if !group.IsMember(userID) {
			return model.ErrNotMember
		}

		wasAdmin := group.IsAdmin(userID)
		group.MemberIDs.Remove(userID)
		group.AdminIDs.Remove(userID)

		result = &model.LeaveGroupResponse{GroupID: group.GroupID}

		if wasAdmin && len(group.AdminIDs) == 0 {
			outcome := model.ResolveSuccession(group.MemberIDs, group.LastAdminRule)
			if outcome.DeleteGroup {
				result.GroupDeleted = true
				return txRepo.Delete(ctx, group.GroupID)
			}
			group.AdminIDs.Add(outcome.PromotedID)
			result.PromotedAdminID = outcome.PromotedID
		}

		return txRepo.Save(ctx, group)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Leave completed",
		"group_id", req.GroupID,
		"user_id", userID,
		"group_deleted", result.GroupDeleted,
		"promoted_admin_id", result.PromotedAdminID,
	)
	return result, nil
}

// IsMember reports whether userID currently belongs to the group.
func (s *service) IsMember(ctx context.Context, groupID, userID string) (*model.IsMemberResponse, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &model.IsMemberResponse{
		GroupID:  groupID,
		UserID:   userID,
		IsMember: group.IsMember(userID),
	}, nil
}

// mutate runs fn on the current group snapshot while holding the group's
// key lock, inside a transaction. fn is responsible for the final Save or
// Delete; any error aborts the transaction before a write becomes visible.
func (s *service) mutate(
	ctx context.Context,
	groupID string,
	fn func(txRepo repository.Repository, group *model.Group) error,
) error {
	return s.locks.WithLock(groupID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txRepo := repository.New(tx, s.logger)
			group, err := txRepo.GetByID(ctx, groupID)
			if err != nil {
				return err
			}
			return fn(txRepo, group)
		})
	})
}
