package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/routes"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/config"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/cache"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "github.com/SDNATH-Git/blood-donation-serverset/docs" // Swagger docs
)

// @title Blood Donation API
// @version 1.0
// @description Blood donation coordination backend: donor directory, donation requests, funds and blogs.

// @contact.name API Support

// @host localhost:5000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Application logger
	zl, flush := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.IsProd(),
		File:       cfg.Log.File,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	})
	defer flush()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase()

	// Auto migrate
	if err := models.AutoMigrate(db); err != nil {
		zl.Fatal("auto migration failed", zap.Error(err))
	}
	zl.Info("database migration completed")

	// Seed master data
	if err := config.SeedMasterData(db); err != nil {
		zl.Warn("failed to seed master data", zap.Error(err))
	}

	// Optional redis cache (disabled when REDIS_ADDR is empty)
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Blood Donation API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, zl)
	app.Use(middleware.Metrics())

	// Setup routes
	h := routes.Setup(app, db, cfg, c, zl)

	// Scheduled maintenance
	if err := h.Cleanup.Start(); err != nil {
		zl.Fatal("failed to start cleanup scheduler", zap.Error(err))
	}
	defer h.Cleanup.Stop()

	// Graceful shutdown
	go gracefulShutdown(app, zl)

	// Start server
	zl.Info("server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zl *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	zl.Info("server stopped gracefully")
}
