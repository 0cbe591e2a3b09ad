// Package main is the entry point for the auth service.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/docvault/auth-service/docs"
	"github.com/docvault/auth-service/internal/config"
	"github.com/docvault/auth-service/internal/database"
	"github.com/docvault/auth-service/internal/handlers"
	"github.com/docvault/auth-service/internal/metrics"
	"github.com/docvault/auth-service/internal/repository"
	"github.com/docvault/auth-service/internal/routes"
	"github.com/docvault/auth-service/internal/service"
	"github.com/docvault/auth-service/pkg/redis"
)

// @title DocVault Auth Service API
// @version 1.0
// @description Authentication and session-token service for the DocVault dashboard
// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Environment)
	slog.SetDefault(logger)

	if cfg.IsDefaultSecret() && cfg.Environment != "development" {
		logger.Warn("JWT_SECRET is the demo fallback; set it before deploying")
	}

	// A dead database is fatal: the service has nothing to serve without it.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient == nil {
		logger.Info("REDIS_ADDR not set, login activity tracking disabled")
	}

	userRepo := repository.NewUserRepository(db)
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	authService := service.NewAuthService(userRepo, jwtService, redisClient)

	serviceMetrics := metrics.New(prometheus.DefaultRegisterer)
	authHandler := handlers.NewAuthHandler(authService, serviceMetrics)
	healthHandler := handlers.NewHealthHandler()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	routes.Setup(router, authHandler, healthHandler, jwtService, cfg)

	logger.Info("starting auth service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logger.Error("server terminated", "error", err)
		os.Exit(1)
	}
}

func newLogger(environment string) *slog.Logger {
	if environment == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
