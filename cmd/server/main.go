package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"

	"storefront/internal/app/di"
	"storefront/internal/platform/config"
	"storefront/internal/platform/db"
	"storefront/internal/platform/http/middleware"
	"storefront/internal/platform/logging"
	infraredis "storefront/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// JWT_SECRETチェック
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	// db
	identityDB, err := db.Open(cfg.IdentityDB)
	if err != nil {
		slog.Error("failed to connect identity db", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close(identityDB) }()

	catalogDB, err := db.Open(cfg.CatalogDB)
	if err != nil {
		slog.Error("failed to connect catalog db", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close(catalogDB) }()

	if cfg.RunMigrations {
		if err := di.Migrate(identityDB, catalogDB); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied")
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), cfg.RedisAddr(), cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Sentry error tracking
	sentryOn := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			sentryOn = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := di.NewHTTPHandler(cfg, di.Deps{
		IdentityDB: identityDB,
		CatalogDB:  catalogDB,
		Redis:      rdb,
		Metrics:    middleware.NewMetrics(reg),
		Sentry:     sentryOn,
	})
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}
