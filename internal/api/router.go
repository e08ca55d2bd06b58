package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/usercore/account-service/internal/api/handler"
	"github.com/usercore/account-service/internal/api/middleware"
	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
	"github.com/usercore/account-service/internal/core/service"
	"github.com/usercore/account-service/internal/infrastructure/config"
	"github.com/usercore/account-service/internal/infrastructure/db/postgres"
	sessionredis "github.com/usercore/account-service/internal/infrastructure/session/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *goredis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("account"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	avatarRepo := postgres.NewAvatarRepository(pool)
	sessionStore := sessionredis.NewSessionStore(rdb, cfg.SessionTTL)

	codec := service.NewPasswordCodec(cfg.PasswordSalt)
	authService := service.NewAuthService(userRepo, codec, log)
	searchService := service.NewSearchService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessionStore, audit, cfg.JWTSecret, cfg.SessionTTL)
	userHandler := handler.NewUserHandler(authService, searchService)
	avatarHandler := handler.NewAvatarHandler(avatarRepo)

	sessionMW := middleware.Session(cfg.JWTSecret, sessionStore)
	memberMW := middleware.RBAC(authService, domain.RoleNormal, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, sessionMW)

	// --- User routes ---
	e.GET("/users/me", userHandler.Me, sessionMW)
	e.GET("/users", userHandler.Search, sessionMW, memberMW)

	// --- Avatar routes ---
	e.GET("/avatars/:id", avatarHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
