package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"invite-builder/internal/builder/handlers"
	"invite-builder/internal/builder/repository"
	"invite-builder/internal/builder/service"
	"invite-builder/internal/common/config"
	"invite-builder/internal/common/logger"
	"invite-builder/internal/common/metrics"
	"invite-builder/internal/common/middleware"
)

// ============================================================
// Builder Service
// ============================================================

func main() {
	// builder и gateway делят .env; без явного PORT builder уходит на 3001
	if os.Getenv("PORT") == "" {
		os.Setenv("PORT", "3001")
	}
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	metrics.Init(prometheus.DefaultRegisterer)

	// ============================================================
	// Storage
	// ============================================================

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Error("open database", logger.String("path", cfg.DBPath), logger.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	repo := repository.New(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = repo.Init(ctx)
	cancel()
	if err != nil {
		log.Error("apply migrations", logger.Err(err))
		os.Exit(1)
	}

	templates := service.NewTemplateStore(cfg.TemplatesDir)
	projects := service.NewProjectService(repo, templates, log, service.WithCanvasWidth(cfg.CanvasWidth))
	sessions := service.NewSessionManager()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Invite Builder",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("builder"))
	app.Use(middleware.CORS())
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.Register(app, handlers.Handlers{
		Health:   handlers.NewHealthHandler(projects, log),
		Convert:  handlers.NewConvertHandler(projects, log),
		Projects: handlers.NewProjectHandler(projects, sessions, log),
		Sessions: handlers.NewSessionHandler(projects, sessions, log),
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting builder service",
		logger.String("addr", addr),
		logger.String("env", cfg.Environment),
		logger.String("db", cfg.DBPath),
		logger.String("templates", cfg.TemplatesDir),
		logger.Float64("canvas_width", cfg.CanvasWidth),
	)

	if err := app.Listen(addr); err != nil {
		log.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}
