package main

import (
	"github.com/cuti-management/backend/internal/app"
	"github.com/cuti-management/backend/internal/config"
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

	if err := app.RunWorker(cfg, log); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
