package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"surveyhub_backend/internals/configs"
	database "surveyhub_backend/internals/databases"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/logger"
	middlewares "surveyhub_backend/internals/middlewares"
	routes "surveyhub_backend/internals/route"
	"surveyhub_backend/internals/seeds"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	logger.SetLevel(cfg.LogLevel)
	if cfg.LogJSON {
		logger.UseJSON()
	}
	host, _ := os.Hostname()
	if logger.EnableRollbar(logger.RollbarOptions{
		Token:       cfg.RollbarToken,
		Environment: cfg.AppEnv,
		ServerHost:  host,
		CodeVersion: cfg.Build,
	}) {
		logger.Info("rollbar enabled")
	}
	defer logger.FlushRollbar()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               8 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg)

	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatalf("migrate: %v", err)
		}
	}
	if cfg.DB.Seed {
		if err := seeds.RunAllSeeds(context.Background(), db); err != nil {
			logger.Fatalf("seed: %v", err)
		}
	}
	database.WarmUp(db)

	routes.SetupRoutes(app, db, cfg)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		logger.Infof("listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown, then close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
}
