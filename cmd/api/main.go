package main

import (
	"time"

	"github.com/cuti-management/backend/internal/app"
	"github.com/cuti-management/backend/internal/bootstrap"
	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/logger"

	"github.com/gin-gonic/gin"
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

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()
	r := gin.New()

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, log)
	if err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:            cfg.Port,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: cfg.Shutdown,
		},
		bootstrap.NewStdoutAuditLogger(log),
	)
}
