package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"invite-builder/internal/common/config"
	"invite-builder/internal/common/logger"
	"invite-builder/internal/common/metrics"
	"invite-builder/internal/common/middleware"
	"invite-builder/internal/gateway/handlers"
	"invite-builder/internal/gateway/proxy"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	metrics.Init(prometheus.DefaultRegisterer)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("gateway"))
	app.Use(middleware.CORS())
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ============================================================
	// Health Check Routes
	// ============================================================

	health := handlers.NewHealthHandler(cfg.BuilderURL, &http.Client{Timeout: 2 * time.Second}, log)
	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	docs := handlers.NewDocsHandler(cfg.OpenAPIPath)
	app.Get("/docs", docs.UI)
	app.Get("/docs/openapi.yaml", docs.OpenAPI)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "API Gateway v1",
			"status":  "ok",
		})
	})

	// Builder Service
	builder := proxy.New(cfg.BuilderURL, log)
	api.All("/*", builder.Handler("/api/v1"))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting api gateway",
		logger.String("addr", addr),
		logger.String("env", cfg.Environment),
		logger.String("builder", builder.Target()),
	)

	if err := app.Listen(addr); err != nil {
		log.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}
