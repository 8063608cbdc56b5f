// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogadapters "storefront/internal/feature/catalog/adapters"
	"storefront/internal/platform/cache"
)

// NewProductStore creates the catalog store.
// If Redis is available, reads go through the Redis cache decorator.
// Otherwise, the gorm repository is used directly.
func NewProductStore(rdb *redis.Client, ttl time.Duration, db *gorm.DB) cache.ProductStore {
	repo := catalogadapters.NewProductRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingProductRepository(rdb, ttl, repo, cache.DefaultNamespace)
}
