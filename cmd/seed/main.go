package main

import (
	"context"

	"github.com/cuti-management/backend/internal/app"
	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/shared/connection"
	"github.com/cuti-management/backend/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.Setup(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		log.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := app.Migrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	summary, err := app.Seed(context.Background(), db, cfg.JWT, log)
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("seed summary",
		zap.Int("users", summary.Users),
		zap.Int("leave_requests", summary.Leaves),
		zap.String("admin", "admin / admin123"),
		zap.String("users_login", "john, jane, bob / user123"),
	)
}
