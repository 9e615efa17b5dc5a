// Package router provides group module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clatterline/messenger/internal/group/handler"
	"github.com/clatterline/messenger/internal/group/repository"
	"github.com/clatterline/messenger/internal/group/service"
	"github.com/clatterline/messenger/pkg/keymutex"
)

// RegisterRoutes registers group module routes.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	gate service.AccessGate,
	locks *keymutex.KeyMutex,
	logger *zap.SugaredLogger,
) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, gate, locks, logger)
	h := handler.New(svc, logger)

	r.POST("/groups/create", h.Create)
	r.GET("/groups/get", h.Get)
	r.POST("/groups/update", h.Update)
	r.POST("/groups/delete", h.Delete)
	r.POST("/groups/join", h.Join)
	r.POST("/groups/approve", h.Approve)
	r.POST("/groups/reject", h.Reject)
	r.POST("/groups/banMember", h.BanMember)
	r.POST("/groups/leave", h.Leave)
	r.GET("/groups/isMember", h.IsMember)
}
