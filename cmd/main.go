package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jasonmoraesteodoro/tmmarinhosports/config"
	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/logger"
	"github.com/jasonmoraesteodoro/tmmarinhosports/metrics"
	"github.com/jasonmoraesteodoro/tmmarinhosports/routes"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.AppEnv); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Get().Sync()

	// If the DB is down we fail right away.
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(logger.Middleware())
	e.Use(metrics.Middleware())

	routes.RegisterRoutes(e, cfg)

	addr := ":" + cfg.AppPort
	logger.Get().Info("server listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}
