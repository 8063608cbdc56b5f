// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/feature/catalog/domain/entity"
	"storefront/internal/feature/catalog/usecase"
)

// DefaultNamespace prefixes every key written by CachingProductRepository.
const DefaultNamespace = "catalog"

// ProductStore is the read and write surface of the catalog store.
type ProductStore interface {
	usecase.ProductRepository
	usecase.ProductWriter
}

// CachingProductRepository decorates a ProductStore with Redis caching.
// Listings, categories, product details and the price range are cached.
// Summary lookups by id pass straight through since they serve hydration of
// per-user data and are keyed by arbitrary id sets.
type CachingProductRepository struct {
	inner     ProductStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ ProductStore = (*CachingProductRepository)(nil)

// NewCachingProductRepository wraps inner. A nil rdb disables caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "catalog".
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner ProductStore, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingProductRepository) List(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error) {
	key := fmt.Sprintf("%s:list:%d:%d", c.namespace, offset, limit)
	return cached(ctx, c, key, func() ([]entity.ProductSummary, error) {
		return c.inner.List(ctx, offset, limit)
	})
}

func (c *CachingProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return cached(ctx, c, c.namespace+":categories", func() ([]string, error) {
		return c.inner.DistinctCategories(ctx)
	})
}

// FindByID caches hits only; a missing product is looked up again next time.
func (c *CachingProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	key := fmt.Sprintf("%s:product:%d", c.namespace, id)
	return cached(ctx, c, key, func() (*entity.Product, error) {
		return c.inner.FindByID(ctx, id)
	})
}

func (c *CachingProductRepository) PriceRange(ctx context.Context) (entity.PriceRange, error) {
	return cached(ctx, c, c.namespace+":price-range", func() (entity.PriceRange, error) {
		return c.inner.PriceRange(ctx)
	})
}

func (c *CachingProductRepository) FindSummariesByIDs(ctx context.Context, ids []uint) ([]entity.ProductSummary, error) {
	return c.inner.FindSummariesByIDs(ctx, ids)
}

// UpsertBatch writes through and then drops every cached catalog entry.
func (c *CachingProductRepository) UpsertBatch(ctx context.Context, products []entity.Product) error {
	if err := c.inner.UpsertBatch(ctx, products); err != nil {
		return err
	}
	if c.rdb == nil || len(products) == 0 {
		return nil
	}
	// Best effort: stale entries expire with the ttl anyway.
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("failed to invalidate catalog cache", "namespace", c.namespace, "error", err)
	}
	return nil
}

// cached reads key from Redis, falling back to load and storing its result.
func cached[T any](ctx context.Context, c *CachingProductRepository, key string, load func() (T, error)) (T, error) {
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return out, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingProductRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
