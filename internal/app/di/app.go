package di

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront/internal/app/router"
	addressadapters "storefront/internal/feature/address/adapters"
	addresshandler "storefront/internal/feature/address/transport/handler"
	addressusecase "storefront/internal/feature/address/usecase"
	authadapters "storefront/internal/feature/auth/adapters"
	authhandler "storefront/internal/feature/auth/transport/handler"
	authusecase "storefront/internal/feature/auth/usecase"
	cataloghandler "storefront/internal/feature/catalog/transport/handler"
	catalogusecase "storefront/internal/feature/catalog/usecase"
	favouriteadapters "storefront/internal/feature/favourite/adapters"
	favouritehandler "storefront/internal/feature/favourite/transport/handler"
	favouriteusecase "storefront/internal/feature/favourite/usecase"
	orderadapters "storefront/internal/feature/order/adapters"
	orderhandler "storefront/internal/feature/order/transport/handler"
	orderusecase "storefront/internal/feature/order/usecase"
	profilehandler "storefront/internal/feature/profile/transport/handler"
	profileusecase "storefront/internal/feature/profile/usecase"
	"storefront/internal/platform/config"
	platformhandler "storefront/internal/platform/http/handler"
	"storefront/internal/platform/http/middleware"
	jwtmw "storefront/internal/platform/jwt"
)

// Deps are the opened resources the HTTP app is built from.
type Deps struct {
	IdentityDB *gorm.DB
	CatalogDB  *gorm.DB
	// Redis is nil when running without cache.
	Redis   *redis.Client
	Metrics *middleware.Metrics
	Sentry  bool
}

// NewHTTPHandler wires repositories, usecases and handlers into the router.
func NewHTTPHandler(cfg *config.Config, d Deps) (*gin.Engine, error) {
	// Repository
	users := authadapters.NewUserRepository(d.IdentityDB)
	addresses := addressadapters.NewAddressRepository(d.IdentityDB)
	favourites := favouriteadapters.NewFavouriteRepository(d.IdentityDB)
	orders := orderadapters.NewOrderRepository(d.IdentityDB)
	cart := orderadapters.NewCartRepository(d.IdentityDB)
	products := NewProductStore(d.Redis, cfg.CatalogCacheTTL, d.CatalogDB)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)
	catalogUC := catalogusecase.NewCatalogUsecase(products)
	authUC := authusecase.NewAuthUsecase(users, tokens)
	addressUC := addressusecase.NewAddressUsecase(addresses)
	favouriteUC := favouriteusecase.NewFavouriteUsecase(favourites, catalogUC)
	orderUC := orderusecase.NewOrderUsecase(orders, catalogUC)
	cartUC := orderusecase.NewCartUsecase(cart, catalogUC)
	profileUC := profileusecase.NewProfileUsecase(users, addresses, favourites, orders, catalogUC)

	health, err := healthDeps(d)
	if err != nil {
		return nil, err
	}

	// Handler
	h := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Catalog:   cataloghandler.NewCatalogHandler(catalogUC),
		Profile:   profilehandler.NewProfileHandler(profileUC),
		Address:   addresshandler.NewAddressHandler(addressUC),
		Favourite: favouritehandler.NewFavouriteHandler(favouriteUC),
		Order:     orderhandler.NewOrderHandler(orderUC, cartUC),
		Health:    platformhandler.NewHealthHandler(health),
	}

	return router.NewRouter(h, router.Options{
		Verifier:    jwtmw.NewVerifier(cfg.JWTSecret),
		Metrics:     d.Metrics,
		CORSOrigins: cfg.CORSOrigins,
		Sentry:      d.Sentry,
	}), nil
}

func healthDeps(d Deps) (map[string]platformhandler.Pinger, error) {
	identity, err := d.IdentityDB.DB()
	if err != nil {
		return nil, err
	}
	catalog, err := d.CatalogDB.DB()
	if err != nil {
		return nil, err
	}
	deps := map[string]platformhandler.Pinger{"identity": identity, "catalog": catalog}
	if d.Redis != nil {
		deps["redis"] = redisPinger{d.Redis}
	}
	return deps, nil
}

type redisPinger struct{ rdb *redis.Client }

func (p redisPinger) PingContext(ctx context.Context) error { return p.rdb.Ping(ctx).Err() }
