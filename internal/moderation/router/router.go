// Package router provides moderation module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clatterline/messenger/internal/moderation/handler"
	"github.com/clatterline/messenger/internal/moderation/service"
)

// RegisterRoutes registers moderation module routes. The service is built
// by the caller because it is shared with the group module's access gate.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.POST("/moderation/ban", h.Ban)
	r.POST("/moderation/unban", h.Unban)
	r.POST("/moderation/report", h.Report)
	r.GET("/moderation/validateAccess", h.ValidateAccess)
	r.GET("/moderation/bans", h.ListBans)
}
