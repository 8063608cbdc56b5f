// Package usecase はfavouriteフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"storefront/internal/feature/catalog/hydrate"
	"storefront/internal/feature/favourite/domain/entity"
)

var (
	// ErrFavouriteNotFound はお気に入りが存在しないか、呼び出し元のものでない場合に返されます。
	ErrFavouriteNotFound = errors.New("favourite not found")

	// ErrProductNotFound はカタログに存在しない商品をお気に入りにしようとした場合に返されます。
	ErrProductNotFound = errors.New("product not found")
)

// FavouriteRepository はお気に入りの永続化層を抽象化します。
type FavouriteRepository interface {
	// ListByUser はユーザーのお気に入りをID昇順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Favourite, error)
	// Add は (userID, productID) を保存します。既にあれば既存の行を返します。
	Add(ctx context.Context, userID, productID uint) (*entity.Favourite, error)
	// Delete は userID のお気に入り id を削除します。見つからなければ ErrFavouriteNotFound を返します。
	Delete(ctx context.Context, userID, id uint) error
}

// Catalog はお気に入りが必要とする商品の問い合わせを定義します。
type Catalog interface {
	hydrate.ProductFetcher
	ProductExists(ctx context.Context, id uint) (bool, error)
}

// FavouriteUsecase はユーザーのお気に入りを管理します。
type FavouriteUsecase struct {
	repo    FavouriteRepository
	catalog Catalog
}

// NewFavouriteUsecase はFavouriteUsecaseの新しいインスタンスを生成します。
func NewFavouriteUsecase(repo FavouriteRepository, catalog Catalog) *FavouriteUsecase {
	return &FavouriteUsecase{repo: repo, catalog: catalog}
}

// List はユーザーのお気に入りを商品と一緒に返します。
func (u *FavouriteUsecase) List(ctx context.Context, userID uint) ([]entity.FavouriteWithProduct, error) {
	favs, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return hydrate.Favourites(ctx, favs, u.catalog)
}

// Add は productID をお気に入りに追加します。2回追加しても同じお気に入りを返します。
func (u *FavouriteUsecase) Add(ctx context.Context, userID, productID uint) (*entity.FavouriteWithProduct, error) {
	ok, err := u.catalog.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	fav, err := u.repo.Add(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	out, err := hydrate.Favourites(ctx, []entity.Favourite{*fav}, u.catalog)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Remove はユーザーのお気に入りを1件削除します。
func (u *FavouriteUsecase) Remove(ctx context.Context, userID, id uint) error {
	return u.repo.Delete(ctx, userID, id)
}
