package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/feature/catalog/domain/entity"
	"storefront/internal/feature/catalog/usecase"
)

// mockProductStore はテスト用のProductStoreモック実装です。
type mockProductStore struct {
	listFn       func(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error)
	findByIDFn   func(ctx context.Context, id uint) (*entity.Product, error)
	summariesFn  func(ctx context.Context, ids []uint) ([]entity.ProductSummary, error)
	upsertFn     func(ctx context.Context, products []entity.Product) error
	categoryHits int
}

func (m *mockProductStore) List(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, nil
}

func (m *mockProductStore) DistinctCategories(ctx context.Context) ([]string, error) {
	m.categoryHits++
	return []string{"Home"}, nil
}

func (m *mockProductStore) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrProductNotFound
}

func (m *mockProductStore) PriceRange(ctx context.Context) (entity.PriceRange, error) {
	return entity.PriceRange{}, nil
}

func (m *mockProductStore) FindSummariesByIDs(ctx context.Context, ids []uint) ([]entity.ProductSummary, error) {
	if m.summariesFn != nil {
		return m.summariesFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockProductStore) UpsertBatch(ctx context.Context, products []entity.Product) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, products)
	}
	return nil
}

// TestNewCachingProductRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingProductRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"zero values", 0, "", 5 * time.Minute, "catalog"},
		{"negative ttl", -time.Minute, "", 5 * time.Minute, "catalog"},
		{"custom values preserved", 10 * time.Minute, "shop", 10 * time.Minute, "shop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := NewCachingProductRepository(nil, tt.ttl, &mockProductStore{}, tt.namespace)
			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

func TestCachingProductRepository_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockProductStore{}
	repo := NewCachingProductRepository(nil, time.Minute, inner, "")

	for range 3 {
		cats, err := repo.DistinctCategories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Home"}, cats)
	}
	assert.Equal(t, 3, inner.categoryHits, "every call must reach the store")
	assert.NoError(t, repo.UpsertBatch(context.Background(), []entity.Product{{ID: 1}}))
}

// TestCachingProductRepository_List_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingProductRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal([]entity.ProductSummary{{ID: 1, Name: "Mug"}})
	mock.ExpectGet("catalog:list:0:15").SetVal(string(cachedJSON))

	inner := &mockProductStore{
		listFn: func(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error) {
			t.Error("inner repository should not be called on cache hit")
			return nil, nil
		},
	}

	out, err := NewCachingProductRepository(rdb, 5*time.Minute, inner, "").List(context.Background(), 0, 15)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Mug", out[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_List_CacheMiss はキャッシュミス時にDBから取得しキャッシュへ保存することを検証します。
func TestCachingProductRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	fromDB := []entity.ProductSummary{{ID: 2, Name: "Lamp", Price: 25}}
	expectedJSON, _ := json.Marshal(fromDB)

	mock.ExpectGet("catalog:list:15:15").RedisNil()
	mock.ExpectSet("catalog:list:15:15", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProductStore{
		listFn: func(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error) {
			return fromDB, nil
		},
	}

	out, err := NewCachingProductRepository(rdb, 5*time.Minute, inner, "").List(context.Background(), 15, 15)

	require.NoError(t, err)
	assert.Equal(t, fromDB, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_FindByID_CorruptedCache は破損したキャッシュを削除してDBにフォールバックすることを検証します。
func TestCachingProductRepository_FindByID_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	product := &entity.Product{ID: 7, Title: "Chair", Images: []entity.Image{}}
	expectedJSON, _ := json.Marshal(product)

	mock.ExpectGet("catalog:product:7").SetVal("invalid json")
	mock.ExpectDel("catalog:product:7").SetVal(1)
	mock.ExpectSet("catalog:product:7", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProductStore{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Product, error) {
			return product, nil
		},
	}

	out, err := NewCachingProductRepository(rdb, 5*time.Minute, inner, "").FindByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Chair", out.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_FindByID_NotFoundIsNotCached は未存在の商品をキャッシュしないことを検証します。
func TestCachingProductRepository_FindByID_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("catalog:product:9").RedisNil()

	_, err := NewCachingProductRepository(rdb, 5*time.Minute, &mockProductStore{}, "").FindByID(context.Background(), 9)

	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingProductRepository_FindSummariesByIDs_PassThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	called := false
	inner := &mockProductStore{
		summariesFn: func(ctx context.Context, ids []uint) ([]entity.ProductSummary, error) {
			called = true
			return []entity.ProductSummary{{ID: ids[0]}}, nil
		},
	}

	out, err := NewCachingProductRepository(rdb, time.Minute, inner, "").FindSummariesByIDs(context.Background(), []uint{4})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet(), "no redis traffic expected")
}

// TestCachingProductRepository_UpsertBatch_Invalidates は書き込み後にnamespace配下のキーを削除することを検証します。
func TestCachingProductRepository_UpsertBatch_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "catalog:*", 200).SetVal([]string{"catalog:list:0:15", "catalog:categories"}, 0)
	mock.ExpectDel("catalog:list:0:15", "catalog:categories").SetVal(2)

	repo := NewCachingProductRepository(rdb, time.Minute, &mockProductStore{}, "")
	err := repo.UpsertBatch(context.Background(), []entity.Product{{ID: 1, Title: "Mug"}})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingProductRepository_UpsertBatch_InnerError は書き込み失敗時にキャッシュを触らないことを検証します。
func TestCachingProductRepository_UpsertBatch_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	wantErr := errors.New("write failed")
	inner := &mockProductStore{
		upsertFn: func(ctx context.Context, products []entity.Product) error { return wantErr },
	}

	err := NewCachingProductRepository(rdb, time.Minute, inner, "").UpsertBatch(context.Background(), []entity.Product{{ID: 1}})

	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
