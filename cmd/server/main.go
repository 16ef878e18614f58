package main

import (
	"log/slog"
	"net/http"
	"os"

	"sustainshare/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sustainshare/internal/auth"
	"sustainshare/internal/cache"
	"sustainshare/internal/config"
	"sustainshare/internal/db"
	"sustainshare/internal/facade"
	"sustainshare/internal/handler"
	"sustainshare/internal/logging"
	"sustainshare/internal/remote"
	"sustainshare/internal/repository"
	"sustainshare/internal/router"
	"sustainshare/internal/service"
	"sustainshare/internal/store"
	"sustainshare/internal/tracking"
)

// @title SustainShare Coordination API
// @version 1.0
// @description Food donation coordination API with offline-first data access, donation lifecycle tracking, and JWT-secured admin endpoints.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logging.Setup()
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	// Pick the persistence medium. When MySQL is unreachable the service
	// still comes up in demo mode on an in-memory store.
	var dataStore store.Store
	mode := "database"
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		slog.Warn("database unavailable, using in-memory store", "error", err)
		dataStore = store.NewMemory()
		mode = "memory"
	} else {
		sqlStore := store.NewSQL(gormDB)
		if err := sqlStore.Migrate(); err != nil {
			slog.Error("auto-migrate failed", "error", err)
			os.Exit(1)
		}
		dataStore = sqlStore
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	upstream := remote.NewClient(cfg.UpstreamURL, cfg.UpstreamTimeout, cacheClient, cfg.HealthCacheTTL)

	// Initialize repositories
	donationRepo := repository.NewDonationRepository(dataStore)
	pickupRepo := repository.NewPickupRepository(dataStore)
	claimRepo := repository.NewClaimRepository(dataStore)
	userRepo := repository.NewUserRepository(dataStore)

	// Initialize auth and tracking components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tracker := tracking.NewManager(tracking.Options{})

	// Initialize services
	donationService := service.NewDonationService(donationRepo, pickupRepo, claimRepo, tracker, cacheClient)
	pickupService := service.NewPickupService(pickupRepo, donationRepo)
	authService := service.NewAuthService(userRepo, jwtService, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)
	statsService := service.NewStatsService(userRepo, donationRepo, cacheClient)

	// The facade is the single data surface: upstream first, local fallback.
	dataFacade := facade.New(upstream, donationService, pickupService, authService, userService, statsService)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(mode)
	authHandler := handler.NewAuthHandler(dataFacade)
	donationHandler := handler.NewDonationHandler(dataFacade, donationService)
	pickupHandler := handler.NewPickupHandler(dataFacade)
	statsHandler := handler.NewStatsHandler(dataFacade)
	userHandler := handler.NewUserHandler(dataFacade)

	// Register routes
	router.Register(
		e,
		cfg,
		healthHandler,
		authHandler,
		donationHandler,
		pickupHandler,
		statsHandler,
		userHandler,
	)

	slog.Info("starting server",
		"port", cfg.ServerPort,
		"upstream", cfg.UpstreamURL,
		"store", mode,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		slog.Error("server start failed", "error", err)
		os.Exit(1)
	}
}
