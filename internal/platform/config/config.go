// Package config loads process-wide settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storefront/internal/platform/db"
)

const (
	// DefaultTokenTTL is how long an issued bearer token stays valid.
	DefaultTokenTTL = 7 * 24 * time.Hour
	// DefaultCatalogCacheTTL is the lifetime of cached catalog reads.
	DefaultCatalogCacheTTL = 5 * time.Minute
)

// Config holds every setting the server needs. It is built once in main and
// passed to the components that need it.
type Config struct {
	Port string

	JWTSecret string
	TokenTTL  time.Duration

	// IdentityDB stores users, addresses, favourites, orders and cart items.
	IdentityDB db.Config
	// CatalogDB stores products, images and details.
	CatalogDB     db.Config
	RunMigrations bool

	RedisHost       string
	RedisPort       string
	RedisPassword   string
	CatalogCacheTTL time.Duration

	CORSOrigins []string

	SentryDSN string
	AppEnv    string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	driver := getEnv("DB_DRIVER", db.DriverPostgres)

	return &Config{
		Port: getEnv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getDuration("JWT_TTL", DefaultTokenTTL),

		IdentityDB:    db.LoadConfigFromEnv("USER_", driver),
		CatalogDB:     db.LoadConfigFromEnv("PRODUCT_", driver),
		RunMigrations: getBool("RUN_MIGRATIONS", false),

		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		SentryDSN: os.Getenv("SENTRY_DSN"),
		AppEnv:    getEnv("APP_ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment; using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
