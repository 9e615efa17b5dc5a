// Package handler provides HTTP handlers for group endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clatterline/messenger/internal/group/model"
	"github.com/clatterline/messenger/internal/group/service"
)

// Handler handles HTTP requests for group endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new group handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// writeError maps group module sentinel errors to the response envelope.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrGroupNotFound):
		notFoundResponse(c, "group not found")
	case errors.Is(err, model.ErrNotAdmin), errors.Is(err, model.ErrUserBanned):
		errorResponse(c, "FORBIDDEN", err.Error(), http.StatusForbidden)
	case errors.Is(err, model.ErrAlreadyMember),
		errors.Is(err, model.ErrAlreadyPending),
		errors.Is(err, model.ErrNoPendingRequest),
		errors.Is(err, model.ErrNotMember),
		errors.Is(err, model.ErrSelfBan):
		errorResponse(c, "CONFLICT", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrInvalidGroupName), errors.Is(err, model.ErrInvalidLastAdminRule):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("group operation failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// Create handles POST /groups/create request.
func (h *Handler) Create(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /groups/get request.
func (h *Handler) Get(c *gin.Context) {
	groupID := c.Query("group_id")
	if groupID == "" {
		errorResponse(c, "INVALID_REQUEST", "group_id parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), groupID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update handles POST /groups/update request.
func (h *Handler) Update(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actorID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete handles POST /groups/delete request.
func (h *Handler) Delete(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.DeleteGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorID, &req); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Join handles POST /groups/join request.
func (h *Handler) Join(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Join(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Approve handles POST /groups/approve request.
func (h *Handler) Approve(c *gin.Context) {
	approverID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.MembershipDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), approverID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Reject handles POST /groups/reject request.
func (h *Handler) Reject(c *gin.Context) {
	approverID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.MembershipDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), approverID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BanMember handles POST /groups/banMember request.
func (h *Handler) BanMember(c *gin.Context) {
	adminID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.BanMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.BanMember(c.Request.Context(), adminID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Leave handles POST /groups/leave request.
func (h *Handler) Leave(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.LeaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Leave(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// IsMember handles GET /groups/isMember request.
func (h *Handler) IsMember(c *gin.Context) {
	groupID := c.Query("group_id")
	userID := c.Query("user_id")
	if groupID == "" || userID == "" {
		errorResponse(c, "INVALID_REQUEST", "group_id and user_id parameters are required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
