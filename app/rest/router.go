package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"portal-auth/app/port"
	"portal-auth/app/rest/handlers"
	custommw "portal-auth/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger           *slog.Logger
	AuthUsecase      port.AuthUsecase
	BootstrapUsecase port.BootstrapUsecase
	ProfileResolver  port.ProfileResolver
	IdentityGateway  port.IdentityGateway
	SessionStore     port.SessionStore
	SessionMirror    port.SessionMirror
	HealthChecks     map[string]handlers.DependencyCheck
	EnableAuditLog   bool
	EnableDebug      bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Create handlers
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.BootstrapUsecase, config.Logger)
	profileHandler := handlers.NewProfileHandler(config.ProfileResolver, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Logger, config.HealthChecks)

	// Create middleware
	sessionMiddleware := custommw.NewSessionMiddleware(
		config.IdentityGateway, config.SessionStore, config.SessionMirror, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	// Per-request access log; deployments that ship access logs elsewhere
	// can switch it off.
	if config.EnableAuditLog {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
		}))
	}

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Authentication endpoints
	auth := v1.Group("/auth")

	// Public auth endpoints (no auth required)
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/password/reset", authHandler.ResetPassword)

	// Session bootstrap: token verification happens inside the usecase, so
	// these stay public; an invalid token just lands logged out.
	auth.POST("/session", authHandler.Bootstrap)
	auth.GET("/session/cached/:identityId", authHandler.CachedSession)

	// Sign-out is tolerant of missing identity context; the optional
	// session lets a still-valid token resolve the identity to tear down.
	auth.POST("/signout", authHandler.SignOut, sessionMiddleware.OptionalSession())

	// Protected auth endpoints (require a verified token)
	authProtected := auth.Group("")
	authProtected.Use(sessionMiddleware.RequireSession())
	authProtected.POST("/password/update", authHandler.UpdatePassword)

	// User endpoints
	user := v1.Group("/user")
	user.Use(sessionMiddleware.RequireSession())
	user.GET("/profile", profileHandler.GetProfile)

	return e
}
