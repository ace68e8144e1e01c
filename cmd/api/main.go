package main

import (
	"context"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/app"
	"github.com/Sedmeq/WorkTrack/internal/bootstrap"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
	"github.com/Sedmeq/WorkTrack/internal/shared/i18n"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := app.LoadConfig()

	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	apperror.Init()
	i18n.Init(cfg.DefaultLocale)

	a, err := app.BuildApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer a.Close()

	bootstrap.StartHTTPServer(
		a.Router,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		a.Audit,
	)
}
