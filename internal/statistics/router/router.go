// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	groupRepo "github.com/clatterline/messenger/internal/group/repository"
	"github.com/clatterline/messenger/internal/statistics/handler"
	"github.com/clatterline/messenger/internal/statistics/repository"
	"github.com/clatterline/messenger/internal/statistics/service"
)

// RegisterRoutes creates statistics module dependencies and registers routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	groups := groupRepo.New(db, logger)
	svc := service.New(repo, groups, logger)
	h := handler.New(svc, logger)

	r.GET("/statistics/moderation", h.Moderation)
	r.GET("/statistics/groups", h.Groups)
}
