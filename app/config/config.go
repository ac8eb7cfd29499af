package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the portal auth service
type Config struct {
	// Server
	Port     string `env:"PORT" default:"9500"`
	Host     string `env:"HOST" default:"0.0.0.0"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	// Database
	DatabaseURL      string `env:"DATABASE_URL" required:"true"`
	DatabaseHost     string `env:"DB_HOST" default:"portal-postgres"`
	DatabasePort     string `env:"DB_PORT" default:"5432"`
	DatabaseName     string `env:"DB_NAME" default:"portal_db"`
	DatabaseUser     string `env:"DB_USER" default:"portal_user"`
	DatabasePassword string `env:"DB_PASSWORD" required:"true"`
	DatabaseSSLMode  string `env:"DB_SSL_MODE" default:"require"`

	// Supabase identity service
	SupabaseURL        string `env:"SUPABASE_URL" required:"true"`
	SupabaseAnonKey    string `env:"SUPABASE_ANON_KEY" required:"true"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`

	// Redis session mirror
	RedisAddr     string `env:"REDIS_ADDR" default:"portal-redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" default:"0"`

	// Session lifecycle
	SessionTimeout        time.Duration `env:"SESSION_TIMEOUT" default:"24h"`
	SessionIdleTimeout    time.Duration `env:"SESSION_IDLE_TIMEOUT" default:"15m"`
	ActivitySweepInterval time.Duration `env:"ACTIVITY_SWEEP_INTERVAL" default:"1m"`

	// Optional role alias overrides, YAML map of label -> canonical role
	RoleAliasesFile string `env:"ROLE_ALIASES_FILE"`

	// Features
	EnableAuditLog bool `env:"ENABLE_AUDIT_LOG" default:"true"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "9500")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration
	config.DatabaseURL = os.Getenv("DATABASE_URL")
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	config.DatabaseHost = getEnvOrDefault("DB_HOST", "portal-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "portal_db")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "portal_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	// Supabase configuration
	config.SupabaseURL = os.Getenv("SUPABASE_URL")
	if config.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}

	config.SupabaseAnonKey = os.Getenv("SUPABASE_ANON_KEY")
	if config.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	config.SupabaseServiceKey = os.Getenv("SUPABASE_SERVICE_ROLE_KEY")

	// Redis configuration
	config.RedisAddr = getEnvOrDefault("REDIS_ADDR", "portal-redis:6379")
	config.RedisPassword = os.Getenv("REDIS_PASSWORD")
	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	config.RedisDB = redisDB

	// Session lifecycle configuration
	config.SessionTimeout, err = getDurationEnv("SESSION_TIMEOUT", "24h")
	if err != nil {
		return nil, err
	}
	config.SessionIdleTimeout, err = getDurationEnv("SESSION_IDLE_TIMEOUT", "15m")
	if err != nil {
		return nil, err
	}
	config.ActivitySweepInterval, err = getDurationEnv("ACTIVITY_SWEEP_INTERVAL", "1m")
	if err != nil {
		return nil, err
	}

	config.RoleAliasesFile = os.Getenv("ROLE_ALIASES_FILE")

	// Feature flags
	config.EnableAuditLog = getBoolEnv("ENABLE_AUDIT_LOG", true)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate port
	port, err := strconv.ParseInt(c.Port, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	// Check port range (1-65535)
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	// Validate log level
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// Validate session timeouts (minimum 1 minute)
	if c.SessionTimeout < time.Minute {
		return fmt.Errorf("session timeout must be at least 1 minute, got: %v", c.SessionTimeout)
	}
	if c.SessionIdleTimeout < time.Minute {
		return fmt.Errorf("session idle timeout must be at least 1 minute, got: %v", c.SessionIdleTimeout)
	}
	if c.ActivitySweepInterval < time.Second {
		return fmt.Errorf("activity sweep interval must be at least 1 second, got: %v", c.ActivitySweepInterval)
	}
	if c.ActivitySweepInterval > c.SessionIdleTimeout {
		return fmt.Errorf("activity sweep interval (%v) must not exceed the idle timeout (%v)",
			c.ActivitySweepInterval, c.SessionIdleTimeout)
	}

	return nil
}

// RoleAliases reads the optional alias override file. An unset path yields
// an empty map, not an error.
func (c *Config) RoleAliases() (map[string]string, error) {
	if c.RoleAliasesFile == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(c.RoleAliasesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read role aliases file: %w", err)
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(raw, &aliases); err != nil {
		return nil, fmt.Errorf("failed to parse role aliases file: %w", err)
	}

	return aliases, nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) (time.Duration, error) {
	parsed, err := time.ParseDuration(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
