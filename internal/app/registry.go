package app

import (
	"github.com/cuti-management/backend/internal/auth"
	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/health"
	"github.com/cuti-management/backend/internal/leave"
	"github.com/cuti-management/backend/internal/messaging/kafka"
	"github.com/cuti-management/backend/internal/middleware"
	"github.com/cuti-management/backend/internal/rbac"
	"github.com/cuti-management/backend/internal/rbac/infra"
	"github.com/cuti-management/backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerModules wires repositories, services and routes onto router.
// rdb may be nil; idempotency and the redis readiness check are then off.
func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb redis.UniversalClient,
	cfg *config.Config,
	logger *zap.Logger,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.HTTPMetrics(),
	)
	router.NoRoute(middleware.NotFound())

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, cfg.JWT, logger)
	leaveService := leave.NewService(gormDB, leaveRepo, userRepo, outboxRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandler(leaveService, logger)
	healthHandler := health.NewHandler(sqlDB, rdb, logger)

	// --- Routes Registration ---
	health.RegisterRoutes(router, healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, authService, cfg.Login)
		leave.RegisterRoutes(api, leaveHandler, authService, rbacService, rdb)
	}

	return nil
}
