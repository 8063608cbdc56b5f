package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"storefront/internal/app/di"
	catalogadapters "storefront/internal/feature/catalog/adapters"
	catalogusecase "storefront/internal/feature/catalog/usecase"
	"storefront/internal/platform/config"
	"storefront/internal/platform/db"
	"storefront/internal/platform/logging"
	infraredis "storefront/internal/platform/redis"
	"storefront/internal/shared/ratelimiter"
)

func main() {
	file := flag.String("file", "products.json", "catalog export (JSON array or one object per line)")
	batch := flag.Int("batch", catalogusecase.DefaultIngestBatchSize, "products per upsert")
	perSecond := flag.Int("rate", 0, "max batches per second (0 = unlimited)")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	f, err := os.Open(*file)
	if err != nil {
		slog.Error("failed to open catalog file", "file", *file, "error", err)
		os.Exit(1)
	}
	products, err := catalogadapters.ReadProducts(f)
	_ = f.Close()
	if err != nil {
		slog.Error("failed to read catalog file", "file", *file, "error", err)
		os.Exit(1)
	}

	catalogDB, err := db.Open(cfg.CatalogDB)
	if err != nil {
		slog.Error("failed to connect catalog db", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close(catalogDB) }()

	if cfg.RunMigrations {
		if err := catalogDB.AutoMigrate(catalogadapters.Models()...); err != nil {
			slog.Error("failed to migrate catalog db", "error", err)
			os.Exit(1)
		}
	}

	// キャッシュ経由で書き込み、完了時に catalog:* を無効化する
	rdb, err := infraredis.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Warn("Redis unavailable. Cached catalog entries expire by TTL.")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}
	store := di.NewProductStore(rdb, cfg.CatalogCacheTTL, catalogDB)

	uc := catalogusecase.NewIngestUsecase(store, ratelimiter.NewRateLimiter(*perSecond, time.Second), *batch)
	n, err := uc.IngestAll(ctx, products)
	if err != nil {
		slog.Error("ingest failed", "written", n, "error", err)
		os.Exit(1)
	}
	slog.Info("ingest ok", "products", n, "file", *file)
}
