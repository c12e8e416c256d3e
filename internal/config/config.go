// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Development fallbacks for the JWT signing secrets. Production deployments
// must set JWT_SECRET and JWT_REFRESH_SECRET; the server refuses nothing at
// startup, so an unset secret means tokens are forgeable.
const (
	devAccessSecret  = "linkedweldjobs-access-secret-dev"
	devRefreshSecret = "linkedweldjobs-refresh-secret-dev"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env              string // APP_ENV (dev/test/prod)
	Port             string // APP_PORT
	DBUser           string // DB_USER
	DBPass           string // DB_PASS (optional)
	DBHost           string // DB_HOST
	DBPort           string // DB_PORT
	DBName           string // DB_NAME
	AccessSecret     string // JWT_SECRET, signs access tokens
	RefreshSecret    string // JWT_REFRESH_SECRET, signs refresh tokens
	AccessTTLMin     int    // ACCESS_TOKEN_TTL_MIN
	RefreshTTLDays   int    // REFRESH_TOKEN_TTL_DAYS
	VerifyCodeTTLMin int    // VERIFY_CODE_TTL_MIN
	BcryptCost       int    // BCRYPT_COST
	GNewsAPIKey      string // GNEWS_API_KEY (optional, news falls back without it)
}

// Load reads configuration from the environment. Database settings are
// required and missing values abort startup; token lifetimes and secrets
// fall back to the documented development defaults.
func Load() Config {
	return Config{
		Env:              getenv("APP_ENV", "dev"),
		Port:             getenv("APP_PORT", "8080"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		AccessSecret:     getenv("JWT_SECRET", devAccessSecret),
		RefreshSecret:    getenv("JWT_REFRESH_SECRET", devRefreshSecret),
		AccessTTLMin:     envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays:   envInt("REFRESH_TOKEN_TTL_DAYS", 7),
		VerifyCodeTTLMin: envInt("VERIFY_CODE_TTL_MIN", 30),
		BcryptCost:       envInt("BCRYPT_COST", 10),
		GNewsAPIKey:      os.Getenv("GNEWS_API_KEY"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
