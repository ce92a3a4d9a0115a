// Package config resolves the service settings once at startup from the
// environment, with an optional .env file loaded first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is built by Load and passed by value; nothing reads the
// environment after startup.
type Config struct {
	Port               string
	DBDriver           string
	DatabaseURL        string
	JWTSecret          string
	JWTTTL             time.Duration
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CORSAllowedOrigins []string
	RequireAuth        bool
	LogLevel           string
	AppEnv             string
}

// Load reads .env (if present) and the process environment.
// JWT_SECRET is required.
func Load() (Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "3000"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DatabaseURL:        getEnv("DATABASE_URL", "./database.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AppEnv:             getEnv("APP_ENV", "development"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "1h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %q", os.Getenv("JWT_TTL"))
	}
	cfg.JWTTTL = ttl

	if v := os.Getenv("REDIS_DB"); v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	if v := os.Getenv("REQUIRE_AUTH"); v != "" {
		if cfg.RequireAuth, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("invalid REQUIRE_AUTH: %w", err)
		}
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
