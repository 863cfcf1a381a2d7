package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gatewise/auth-service/docs"
	"github.com/gatewise/auth-service/internal/api/handler"
	"github.com/gatewise/auth-service/internal/api/middleware"
	"github.com/gatewise/auth-service/internal/core/domain"
	"github.com/gatewise/auth-service/internal/core/ports"
	"github.com/gatewise/auth-service/internal/core/service"
	"github.com/gatewise/auth-service/internal/infrastructure/config"
	mongodb "github.com/gatewise/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/gatewise/auth-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is created and started by the caller so its worker lifetime
// is tied to the process context, not the router.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	authService := service.NewAuthService(userRepo, tokens, limiter, audit, log)
	authHandler := handler.NewAuthHandler(authService, tokens)
	authMiddleware := middleware.Auth(tokens, audit)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware)
	e.GET("/auth/users", authHandler.Users, authMiddleware, middleware.RBAC(userRepo, domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
