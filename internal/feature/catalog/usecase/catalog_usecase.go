// Package usecase はcatalogフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"math"

	"storefront/internal/feature/catalog/domain/entity"
)

const (
	// DefaultPage は page が未指定または不正なときに使うページ番号
	DefaultPage = 1
	// DefaultLimit は既定のページサイズ
	DefaultLimit = 15
	// MaxLimit はページサイズの上限
	MaxLimit = 100
)

// ProductRepository はカタログストアへの読み取りを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProductRepository interface {
	// List はID昇順で商品サマリーを返します。
	List(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error)
	// DistinctCategories はメインカテゴリーを重複なしで昇順に返します。
	DistinctCategories(ctx context.Context) ([]string, error)
	// FindByID は画像と詳細を含む商品を返します。存在しない場合は ErrProductNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	// PriceRange は最安値と最高値を返します。
	PriceRange(ctx context.Context) (entity.PriceRange, error)
	// FindSummariesByIDs は ids の商品サマリーを1回のクエリで取得します。
	// 存在しないIDは結果に含まれません。
	FindSummariesByIDs(ctx context.Context, ids []uint) ([]entity.ProductSummary, error)
}

// CatalogUsecase は商品閲覧を提供します。
type CatalogUsecase struct {
	repo ProductRepository
}

// NewCatalogUsecase はCatalogUsecaseの新しいインスタンスを生成します。
func NewCatalogUsecase(repo ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

// Page はページング入力を正規化し、クエリに使う offset と limit を返します。
func Page(page, limit int) (offset, size int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// (page-1)*limit が int を超えないように丸める
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return (page - 1) * limit, limit
}

// ListProducts は商品サマリーを1ページ分返します。末尾を超えたページは空です。
func (u *CatalogUsecase) ListProducts(ctx context.Context, page, limit int) ([]entity.ProductSummary, error) {
	offset, size := Page(page, limit)
	products, err := u.repo.List(ctx, offset, size)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.ProductSummary{}
	}
	return products, nil
}

// DistinctCategories はすべてのメインカテゴリーを返します。
func (u *CatalogUsecase) DistinctCategories(ctx context.Context) ([]string, error) {
	cats, err := u.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// GetProduct は商品を返します。存在しない場合は nil を返します。
func (u *CatalogUsecase) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	p, err := u.repo.FindByID(ctx, id)
	if errors.Is(err, ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PriceRange は最安値と最高値を返します。
func (u *CatalogUsecase) PriceRange(ctx context.Context) (entity.PriceRange, error) {
	return u.repo.PriceRange(ctx)
}

// ProductExists は id がカタログに存在する商品かどうかを返します。
func (u *CatalogUsecase) ProductExists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	found, err := u.repo.FindSummariesByIDs(ctx, []uint{id})
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// FindSummariesByIDs はリポジトリをそのまま呼び出します。
// usecase を hydrate 用の ProductFetcher として使えるようにします。
func (u *CatalogUsecase) FindSummariesByIDs(ctx context.Context, ids []uint) ([]entity.ProductSummary, error) {
	return u.repo.FindSummariesByIDs(ctx, ids)
}
