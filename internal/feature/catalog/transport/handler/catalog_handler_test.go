package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/feature/catalog/domain/entity"
)

type mockCatalogUsecase struct {
	ListProductsFunc       func(ctx context.Context, page, limit int) ([]entity.ProductSummary, error)
	DistinctCategoriesFunc func(ctx context.Context) ([]string, error)
	GetProductFunc         func(ctx context.Context, id uint) (*entity.Product, error)
	PriceRangeFunc         func(ctx context.Context) (entity.PriceRange, error)
}

func (m *mockCatalogUsecase) ListProducts(ctx context.Context, page, limit int) ([]entity.ProductSummary, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, page, limit)
	}
	return []entity.ProductSummary{}, nil
}

func (m *mockCatalogUsecase) DistinctCategories(ctx context.Context) ([]string, error) {
	if m.DistinctCategoriesFunc != nil {
		return m.DistinctCategoriesFunc(ctx)
	}
	return []string{}, nil
}

func (m *mockCatalogUsecase) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCatalogUsecase) PriceRange(ctx context.Context) (entity.PriceRange, error) {
	if m.PriceRangeFunc != nil {
		return m.PriceRangeFunc(ctx)
	}
	return entity.PriceRange{}, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newRouter(uc CatalogUsecase) *gin.Engine {
	h := NewCatalogHandler(uc)
	r := gin.New()
	r.GET("/api/products", h.List)
	r.GET("/api/distinct-categories", h.Categories)
	r.GET("/api/product/:id", h.Get)
	r.GET("/api/price-range", h.PriceRange)
	return r
}

func get(t *testing.T, r http.Handler, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	return w.Code
}

func TestCatalogHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 0, 0},
		{"explicit", "?page=3&limit=20", 3, 20},
		{"non-numeric falls back", "?page=abc&limit=x", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPage, gotLimit int
			uc := &mockCatalogUsecase{ListProductsFunc: func(ctx context.Context, page, limit int) ([]entity.ProductSummary, error) {
				gotPage, gotLimit = page, limit
				return []entity.ProductSummary{{ID: 1, Name: "Mug", Price: 4.5}}, nil
			}}

			var body []map[string]any
			code := get(t, newRouter(uc), "/api/products"+tt.query, &body)

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.wantPage, gotPage)
			assert.Equal(t, tt.wantLimit, gotLimit)
			require.Len(t, body, 1)
			assert.Equal(t, "Mug", body[0]["name"])
			assert.Nil(t, body[0]["image"])
		})
	}
}

func TestCatalogHandler_List_Error(t *testing.T) {
	uc := &mockCatalogUsecase{ListProductsFunc: func(ctx context.Context, page, limit int) ([]entity.ProductSummary, error) {
		return nil, errors.New("db down")
	}}

	var body gin.H
	code := get(t, newRouter(uc), "/api/products", &body)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, gin.H{"success": false, "message": "Unable to fetch products"}, body)
}

func TestCatalogHandler_Categories(t *testing.T) {
	uc := &mockCatalogUsecase{DistinctCategoriesFunc: func(ctx context.Context) ([]string, error) {
		return []string{"Audio", "Kitchen"}, nil
	}}

	var body gin.H
	code := get(t, newRouter(uc), "/api/distinct-categories", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, gin.H{"success": true, "categories": []any{"Audio", "Kitchen"}}, body)
}

func TestCatalogHandler_Get(t *testing.T) {
	uc := &mockCatalogUsecase{GetProductFunc: func(ctx context.Context, id uint) (*entity.Product, error) {
		if id != 7 {
			return nil, nil
		}
		return &entity.Product{
			ID: 7, Title: "Kettle", Price: 30,
			Images:  []entity.Image{{HiRes: "a.jpg"}, {HiRes: "b.jpg"}},
			Details: json.RawMessage(`{"Brand":"Acme"}`),
		}, nil
	}}
	r := newRouter(uc)

	t.Run("found", func(t *testing.T) {
		var body gin.H
		code := get(t, r, "/api/product/7", &body)

		assert.Equal(t, http.StatusOK, code)
		p := body["product"].(map[string]any)
		assert.Equal(t, "Kettle", p["title"])
		assert.Len(t, p["images"], 2)
		assert.Equal(t, map[string]any{"Brand": "Acme"}, p["details"])
	})

	t.Run("missing is null", func(t *testing.T) {
		var body gin.H
		code := get(t, r, "/api/product/8", &body)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, gin.H{"success": true, "product": nil}, body)
	})

	t.Run("non-numeric", func(t *testing.T) {
		var body gin.H
		code := get(t, r, "/api/product/abc", &body)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, false, body["success"])
	})
}

func TestCatalogHandler_PriceRange(t *testing.T) {
	lo, hi := 1.5, 99.0
	uc := &mockCatalogUsecase{PriceRangeFunc: func(ctx context.Context) (entity.PriceRange, error) {
		return entity.PriceRange{Min: &lo, Max: &hi}, nil
	}}

	var body gin.H
	code := get(t, newRouter(uc), "/api/price-range", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, gin.H{"success": true, "min": 1.5, "max": 99.0}, body)

	code = get(t, newRouter(&mockCatalogUsecase{}), "/api/price-range", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, gin.H{"success": true, "min": nil, "max": nil}, body)
}
