// Server entrypoint: loads configuration, connects to the database, applies
// migrations, wires the modules together and serves HTTP with graceful
// shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	appConfig "github.com/clatterline/messenger/internal/config"
	"github.com/clatterline/messenger/internal/database/database"
	"github.com/clatterline/messenger/internal/database/migrate"
	groupRouter "github.com/clatterline/messenger/internal/group/router"
	"github.com/clatterline/messenger/internal/health"
	"github.com/clatterline/messenger/internal/middleware"
	moderationReports "github.com/clatterline/messenger/internal/moderation/reports"
	moderationRepo "github.com/clatterline/messenger/internal/moderation/repository"
	moderationRouter "github.com/clatterline/messenger/internal/moderation/router"
	moderationService "github.com/clatterline/messenger/internal/moderation/service"
	statisticsRouter "github.com/clatterline/messenger/internal/statistics/router"
	userRepo "github.com/clatterline/messenger/internal/user/repository"
	userRouter "github.com/clatterline/messenger/internal/user/router"
	"github.com/clatterline/messenger/pkg/keymutex"
	"github.com/clatterline/messenger/pkg/logger"
)

func main() {
	// Missing .env is fine; container deployments pass real env vars.
	_ = godotenv.Load()

	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	db, err := database.New()
	if err != nil {
		zapLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer database.Close(db) //nolint:errcheck

	if err := migrate.Migrate(db); err != nil {
		zapLogger.Fatalw("failed to apply migrations", "error", err)
	}
	zapLogger.Infow("migrations applied")

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(zapLogger), middleware.Recovery(zapLogger))

	healthHandler := health.New(db, zapLogger)
	r.GET("/health", healthHandler.Check)

	// The moderation service is built here rather than inside its router
	// because the group module consumes it as the access gate.
	users := userRepo.New(db, zapLogger)
	modSvc := moderationService.New(
		moderationRepo.New(db, zapLogger),
		users,
		moderationReports.New(),
		cfg.Moderation.ReportThreshold,
		zapLogger,
	)

	userRouter.RegisterRoutes(r, db, zapLogger)
	moderationRouter.RegisterRoutes(r, modSvc, zapLogger)
	groupRouter.RegisterRoutes(r, db, modSvc, keymutex.New(), zapLogger)
	statisticsRouter.RegisterRoutes(r, db, zapLogger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Infow("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Infow("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Errorw("forced shutdown", "error", err)
	}
	zapLogger.Infow("server stopped")
}
