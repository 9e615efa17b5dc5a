// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clatterline/messenger/internal/user/handler"
	"github.com/clatterline/messenger/internal/user/repository"
	"github.com/clatterline/messenger/internal/user/service"
)

// RegisterRoutes registers user module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.POST("/users/register", h.Register)
	r.GET("/users/get", h.Get)
}
