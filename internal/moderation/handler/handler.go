// Package handler provides HTTP handlers for moderation endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clatterline/messenger/internal/moderation/model"
	"github.com/clatterline/messenger/internal/moderation/service"
)

// Handler handles HTTP requests for moderation endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new moderation handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// writeError maps moderation sentinel errors to the response envelope.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBanNotFound):
		notFoundResponse(c, "active ban not found")
	case errors.Is(err, model.ErrUserNotFound):
		notFoundResponse(c, "user not found")
	case errors.Is(err, model.ErrSelfBan),
		errors.Is(err, model.ErrSelfReport),
		errors.Is(err, model.ErrDuplicateBan),
		errors.Is(err, model.ErrDuplicateReport):
		errorResponse(c, "CONFLICT", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrInvalidReason),
		errors.Is(err, model.ErrInvalidScope),
		errors.Is(err, model.ErrGroupIDRequired),
		errors.Is(err, model.ErrGroupIDNotAllowed):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw("moderation operation failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// Ban handles POST /moderation/ban request.
func (h *Handler) Ban(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Ban(c.Request.Context(), actorID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Unban handles POST /moderation/unban request.
func (h *Handler) Unban(c *gin.Context) {
	actorID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.UnbanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Unban(c.Request.Context(), actorID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Report handles POST /moderation/report request.
func (h *Handler) Report(c *gin.Context) {
	reporterID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Report(c.Request.Context(), reporterID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateAccess handles GET /moderation/validateAccess request.
// Returns 200 when access is allowed and 403 with the blocking ban when
// the user is blocked.
func (h *Handler) ValidateAccess(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		errorResponse(c, "INVALID_REQUEST", "user_id parameter is required", http.StatusBadRequest)
		return
	}
	groupID := c.Query("group_id")

	resp, err := h.service.ValidateAccess(c.Request.Context(), userID, groupID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if !resp.Allowed {
		c.JSON(http.StatusForbidden, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListBans handles GET /moderation/bans request.
func (h *Handler) ListBans(c *gin.Context) {
	resp, err := h.service.ListActiveBans(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
