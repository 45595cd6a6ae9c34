// Package config reads process configuration from the environment, with an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dealerops-dev-secret"

// Config is the process configuration.
type Config struct {
	Port          string
	DatabasePath  string
	LogLevel      string
	Environment   string
	AdminName     string
	AdminPhone    string
	AdminPassword string
	JWTSecret     string
	JWTTTL        time.Duration
	RiverWorkers  int
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads a .env file if present, then the environment. Production
// requires JWT_SECRET.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          GetEnv("PORT", "8080"),
		DatabasePath:  GetEnv("DATABASE_PATH", "dealerops.db"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		Environment:   GetEnv("APP_ENV", "development"),
		AdminName:     GetEnv("ADMIN_NAME", "Platform Admin"),
		AdminPhone:    GetEnv("ADMIN_PHONE", ""),
		AdminPassword: GetEnv("ADMIN_PASSWORD", ""),
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		RiverWorkers:  GetIntEnv("RIVER_WORKERS", 10),
	}

	ttl, err := time.ParseDuration(GetEnv("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devSecret
	}
	if (cfg.AdminPhone == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_PHONE and ADMIN_PASSWORD must be set together")
	}
	if cfg.RiverWorkers < 1 {
		return Config{}, fmt.Errorf("RIVER_WORKERS must be positive, got %d", cfg.RiverWorkers)
	}

	return cfg, nil
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
