// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/feature/catalog/domain/entity"
	"storefront/internal/feature/catalog/transport/http/dto"
	"storefront/internal/platform/apperr"
)

// CatalogUsecase はカタログ閲覧のユースケースを定義します。
type CatalogUsecase interface {
	ListProducts(ctx context.Context, page, limit int) ([]entity.ProductSummary, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	PriceRange(ctx context.Context) (entity.PriceRange, error)
}

// CatalogHandler は認証不要のカタログエンドポイントを処理します。
type CatalogHandler struct {
	catalog CatalogUsecase
}

func NewCatalogHandler(catalog CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List は GET /api/products?page=&limit= を処理します。
// 一覧はエンベロープなしの配列で返します。
func (h *CatalogHandler) List(c *gin.Context) {
	var q dto.ListProductsQuery
	_ = c.ShouldBindQuery(&q)
	page, limit := q.Values()

	products, err := h.catalog.ListProducts(c.Request.Context(), page, limit)
	if err != nil {
		api.Fail(c, apperr.Internal("Unable to fetch products", err))
		return
	}
	c.JSON(http.StatusOK, products)
}

// Categories は GET /api/distinct-categories を処理します。
func (h *CatalogHandler) Categories(c *gin.Context) {
	cats, err := h.catalog.DistinctCategories(c.Request.Context())
	if err != nil {
		api.Fail(c, apperr.Internal("Unable to fetch categories", err))
		return
	}
	api.OK(c, gin.H{"categories": cats})
}

// Get は GET /api/product/:id を処理します。存在しないIDには product=null を返します。
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		api.Fail(c, apperr.Validation("Invalid product id"))
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		api.Fail(c, apperr.Internal("Unable to fetch product", err))
		return
	}
	api.OK(c, gin.H{"product": p})
}

// PriceRange は GET /api/price-range を処理します。
func (h *CatalogHandler) PriceRange(c *gin.Context) {
	r, err := h.catalog.PriceRange(c.Request.Context())
	if err != nil {
		api.Fail(c, apperr.Internal("Unable to fetch price range", err))
		return
	}
	api.OK(c, gin.H{"min": r.Min, "max": r.Max})
}
