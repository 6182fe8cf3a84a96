package app

import (
	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the backing stores and registers every module on router.
// The returned cleanup closes those connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	closers := []func(){func() { _ = sqlDB.Close() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			cleanup()
			return nil, err
		}
		log.Info("database schema migrated")
	}

	// redis is optional; an untyped nil keeps the interface nil
	var rdb redis.UniversalClient
	if cfg.Redis.Addr != "" {
		client, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.DB.MaxRetries)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		rdb = client
	} else {
		log.Warn("REDIS_ADDR not set, idempotency keys are ignored")
	}

	// Register Modules & Routes
	if err := registerModules(router, gormDB, rdb, cfg, logger); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
