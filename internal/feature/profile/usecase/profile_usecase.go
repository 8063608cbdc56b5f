// Package usecase はprofileフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"

	address "storefront/internal/feature/address/domain/entity"
	user "storefront/internal/feature/auth/domain/entity"
	authusecase "storefront/internal/feature/auth/usecase"
	"storefront/internal/feature/catalog/hydrate"
	favourite "storefront/internal/feature/favourite/domain/entity"
	order "storefront/internal/feature/order/domain/entity"
	"storefront/internal/feature/profile/domain/entity"
)

// ErrNothingToUpdate は更新項目が1つもない場合に返されます。
var ErrNothingToUpdate = errors.New("nothing to update")

// UserStore はユーザーの読み取りと更新を定義します。
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
}

// AddressLister はユーザーの住所を primary を先頭にして返します。
type AddressLister interface {
	ListByUser(ctx context.Context, userID uint) ([]address.Address, error)
}

// FavouriteLister はユーザーのお気に入りを返します。
type FavouriteLister interface {
	ListByUser(ctx context.Context, userID uint) ([]favourite.Favourite, error)
}

// OrderLister はユーザーの注文を新しい順に返します。
type OrderLister interface {
	ListByUser(ctx context.Context, userID uint) ([]order.Order, error)
}

// ProfileUsecase は /me のビューを組み立て、アカウントを編集します。
type ProfileUsecase struct {
	users      UserStore
	addresses  AddressLister
	favourites FavouriteLister
	orders     OrderLister
	products   hydrate.ProductFetcher
}

// NewProfileUsecase はProfileUsecaseの新しいインスタンスを生成します。
func NewProfileUsecase(users UserStore, addresses AddressLister, favourites FavouriteLister, orders OrderLister, products hydrate.ProductFetcher) *ProfileUsecase {
	return &ProfileUsecase{
		users:      users,
		addresses:  addresses,
		favourites: favourites,
		orders:     orders,
		products:   products,
	}
}

// Me はユーザーを住所・お気に入り・注文と一緒に返します。
// お気に入りと注文には商品サマリーが付きます。
// ユーザーが存在しない場合は authusecase.ErrUserNotFound を返します。
func (u *ProfileUsecase) Me(ctx context.Context, userID uint) (*entity.Me, error) {
	usr, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	addrs, err := u.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	favs, err := u.favourites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := u.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	hydratedFavs, err := hydrate.Favourites(ctx, favs, u.products)
	if err != nil {
		return nil, err
	}
	hydratedOrders, err := hydrate.Orders(ctx, orders, u.products)
	if err != nil {
		return nil, err
	}

	if addrs == nil {
		addrs = []address.Address{}
	}
	return &entity.Me{
		ID:         usr.ID,
		Name:       usr.Name,
		Email:      usr.Email,
		Addresses:  addrs,
		Favourites: hydratedFavs,
		Orders:     hydratedOrders,
	}, nil
}

// UpdateUser はユーザーの名前とメールアドレスを変更します。
// メールアドレスは小文字化し、他のアカウントが使用中なら
// authusecase.ErrEmailAlreadyExists を返します。
func (u *ProfileUsecase) UpdateUser(ctx context.Context, userID uint, name, email *string) (*user.User, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		name = nil
	}
	if email != nil && strings.TrimSpace(*email) == "" {
		email = nil
	}
	if name == nil && email == nil {
		return nil, ErrNothingToUpdate
	}

	usr, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		usr.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		usr.Email = authusecase.NormalizeEmail(*email)
	}
	if err := u.users.Update(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}
