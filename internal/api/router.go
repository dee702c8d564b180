package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuskit/provisioning-system/internal/api/handler"
	"github.com/campuskit/provisioning-system/internal/api/middleware"
	"github.com/campuskit/provisioning-system/internal/core/domain"
	"github.com/campuskit/provisioning-system/internal/core/ports"
	"github.com/campuskit/provisioning-system/internal/core/service"
	"github.com/campuskit/provisioning-system/internal/infrastructure/config"
	mongodb "github.com/campuskit/provisioning-system/internal/infrastructure/db/mongo"
	redisdb "github.com/campuskit/provisioning-system/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. The welcome
// notifier is injected so its worker lifecycle stays owned by main.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	notifier ports.WelcomeNotifier,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit(cfg.ImportBodyLimit))
	e.Use(echoprometheus.NewMiddleware("provisioning"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	reportCache := redisdb.NewReportCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	importService := service.NewImportService(userRepo, notifier, reportCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	importHandler := handler.NewImportHandler(importService, reportCache, log)

	// --- Public routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Admin routes (provisioning is admin-only) ---
	admin := e.Group("/v1/users",
		middleware.Auth(cfg.JWTSecret),
		middleware.RequireRoles(domain.RoleAdmin),
	)
	admin.GET("", userHandler.List)
	admin.POST("/import", importHandler.Upload)
	admin.GET("/import/template", importHandler.Template)
	admin.GET("/import/:id", importHandler.Report)
	admin.GET("/:username", userHandler.Get)

	return e
}
