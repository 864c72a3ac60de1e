package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Maya170605/customs-backend/config"
	"github.com/Maya170605/customs-backend/internal/app/controller"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/app/service"
	"github.com/Maya170605/customs-backend/internal/db"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/Maya170605/customs-backend/internal/router"
	"github.com/Maya170605/customs-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting customs broker backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed reference data (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	unpRepo := repository.NewUnpRepository(db.GetDB())
	declarationRepo := repository.NewDeclarationRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())
	vehicleRepo := repository.NewVehicleRepository(db.GetDB())
	activityRepo := repository.NewActivityRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, unpRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	userService := service.NewUserService(userRepo)
	declarationService := service.NewDeclarationService(declarationRepo, userRepo)
	paymentService := service.NewPaymentService(paymentRepo, declarationRepo, userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, userRepo)
	activityService := service.NewActivityService(activityRepo, userRepo)

	// The admin account must exist before the server accepts requests
	if err := authService.BootstrapAdmin(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
		logger.Fatal("Failed to bootstrap administrator account", err)
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService, userService)
	userController := controller.NewUserController(userService, authService)
	activityController := controller.NewActivityController(activityService)
	declarationController := controller.NewDeclarationController(declarationService)
	paymentController := controller.NewPaymentController(paymentService, declarationService)
	vehicleController := controller.NewVehicleController(vehicleService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, userRepo)

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		activityController,
		declarationController,
		paymentController,
		vehicleController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
