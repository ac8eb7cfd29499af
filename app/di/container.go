package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"portal-auth/app/config"
	"portal-auth/app/domain"
	"portal-auth/app/driver/memory"
	"portal-auth/app/driver/postgres"
	redisdriver "portal-auth/app/driver/redis"
	"portal-auth/app/driver/supabase"
	"portal-auth/app/gateway"
	"portal-auth/app/port"
	"portal-auth/app/rest"
	"portal-auth/app/rest/handlers"
	"portal-auth/app/usecase"
	"portal-auth/app/utils/validator"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB             *postgres.DB
	RedisClient    *redis.Client
	IdentityClient *supabase.Client

	// Gateways
	IdentityGateway port.IdentityGateway

	// Stores
	SessionStore  port.SessionStore
	SessionMirror port.SessionMirror

	// Usecases
	ProfileResolver  port.ProfileResolver
	AuthUsecase      port.AuthUsecase
	BootstrapUsecase port.BootstrapUsecase
	ActivityMonitor  *usecase.ActivityMonitor
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	// Role alias table, extended from configuration when a file is given
	aliases, err := cfg.RoleAliases()
	if err != nil {
		return nil, fmt.Errorf("failed to load role aliases: %w", err)
	}
	if len(aliases) > 0 {
		if err := domain.RegisterRoleAliases(aliases); err != nil {
			return nil, fmt.Errorf("failed to register role aliases: %w", err)
		}
	}

	// Initialize database connection
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis client for the session mirror
	container.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Initialize identity service client
	container.IdentityClient, err = supabase.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity client: %w", err)
	}

	// Initialize gateways and stores
	container.IdentityGateway = gateway.NewIdentityGateway(container.IdentityClient, logger)
	container.SessionStore = memory.NewSessionStore()
	container.SessionMirror = redisdriver.NewSessionMirror(container.RedisClient, cfg.SessionTimeout, logger)

	// Initialize usecases
	profileRepository := postgres.NewProfileRepository(container.DB.Pool(), logger)
	container.ProfileResolver = usecase.NewProfileResolverUsecase(profileRepository, logger)
	container.AuthUsecase = usecase.NewAuthUsecase(
		container.IdentityGateway,
		container.ProfileResolver,
		container.SessionStore,
		container.SessionMirror,
		validator.New(),
		logger,
	)
	container.BootstrapUsecase = usecase.NewBootstrapUsecase(
		container.IdentityGateway,
		container.ProfileResolver,
		container.SessionStore,
		container.SessionMirror,
		logger,
	)
	container.ActivityMonitor = usecase.NewActivityMonitor(
		container.SessionStore,
		container.AuthUsecase,
		cfg.SessionIdleTimeout,
		cfg.ActivitySweepInterval,
		logger,
	)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:           c.Logger,
		AuthUsecase:      c.AuthUsecase,
		BootstrapUsecase: c.BootstrapUsecase,
		ProfileResolver:  c.ProfileResolver,
		IdentityGateway:  c.IdentityGateway,
		SessionStore:     c.SessionStore,
		SessionMirror:    c.SessionMirror,
		HealthChecks: map[string]handlers.DependencyCheck{
			"database": func(ctx context.Context) error {
				return c.DB.HealthCheck(ctx)
			},
			"redis": func(ctx context.Context) error {
				return c.RedisClient.Ping(ctx).Err()
			},
			"identity_service": func(ctx context.Context) error {
				return c.IdentityClient.HealthCheck(ctx)
			},
		},
		EnableAuditLog: c.Config.EnableAuditLog,
		EnableDebug:    c.Config.LogLevel == "debug",
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// Close closes all resources
func (c *Container) Close() error {
	if c.ActivityMonitor != nil {
		c.ActivityMonitor.Stop()
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error("failed to close redis client", "error", err)
		}
	}

	c.Logger.Info("Container closed successfully")
	return nil
}
