// Package router wires every HTTP route onto a gin engine.
package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	addresshandler "storefront/internal/feature/address/transport/handler"
	authhandler "storefront/internal/feature/auth/transport/handler"
	cataloghandler "storefront/internal/feature/catalog/transport/handler"
	favouritehandler "storefront/internal/feature/favourite/transport/handler"
	orderhandler "storefront/internal/feature/order/transport/handler"
	profilehandler "storefront/internal/feature/profile/transport/handler"
	platformhandler "storefront/internal/platform/http/handler"
	"storefront/internal/platform/http/middleware"
	jwtmw "storefront/internal/platform/jwt"
)

// Handlers groups the feature handlers mounted under /api.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Catalog   *cataloghandler.CatalogHandler
	Profile   *profilehandler.ProfileHandler
	Address   *addresshandler.AddressHandler
	Favourite *favouritehandler.FavouriteHandler
	Order     *orderhandler.OrderHandler
	Health    *platformhandler.HealthHandler
}

// Options controls the global middleware.
type Options struct {
	Verifier    jwtmw.Verifier
	Metrics     *middleware.Metrics
	CORSOrigins []string
	// Sentry installs the sentry-gin middleware; sentry.Init must have run.
	Sentry bool
}

func NewRouter(h Handlers, opt Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opt.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	if opt.Metrics != nil {
		r.Use(opt.Metrics.Middleware())
		r.GET("/metrics", opt.Metrics.Handler())
	}
	r.Use(cors.New(corsConfig(opt.CORSOrigins)))

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	api := r.Group("/api")

	// 認証不要
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/products", h.Catalog.List)
	api.GET("/distinct-categories", h.Catalog.Categories)
	api.GET("/product/:id", h.Catalog.Get)
	api.GET("/price-range", h.Catalog.PriceRange)

	// 認証必須のルート
	auth := api.Group("")
	auth.Use(jwtmw.AuthRequired(opt.Verifier))
	{
		auth.GET("/profile", h.Auth.Profile)
		auth.GET("/me", h.Profile.Me)
		auth.PUT("/user/update", h.Profile.UpdateUser)

		auth.POST("/address/add", h.Address.Add)
		auth.PUT("/address/update", h.Address.Update)
		auth.PUT("/address/default", h.Address.SetDefault)
		auth.DELETE("/address/remove", h.Address.Remove)

		auth.GET("/favourites", h.Favourite.List)
		auth.POST("/favourites/add", h.Favourite.Add)
		auth.DELETE("/favourites/remove", h.Favourite.Remove)

		auth.GET("/cart", h.Order.Cart)
		auth.POST("/cart/add", h.Order.AddToCart)
		auth.PUT("/cart/update", h.Order.UpdateCart)
		auth.DELETE("/cart/remove", h.Order.RemoveFromCart)
		auth.POST("/cart/checkout", h.Order.Checkout)

		auth.GET("/orders", h.Order.ListOrders)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
