package usecase

import (
	"context"
	"log/slog"

	"storefront/internal/feature/catalog/hydrate"
	"storefront/internal/feature/order/domain/entity"
)

// MaxQuantity はカート1行あたりの数量の上限です。
const MaxQuantity = 100

// CartRepository はカートの永続化と注文への変換を抽象化します。
type CartRepository interface {
	// ListByUser はカートをID昇順で返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.CartItem, error)
	// Add は productID を quantity 個カートに入れます。既存の行があれば加算します。
	// 行の合計が MaxQuantity を超える場合は ErrInvalidQuantity を返します。
	Add(ctx context.Context, userID, productID uint, quantity int) (*entity.CartItem, error)
	// SetQuantity は行 id の数量を置き換えます。
	SetQuantity(ctx context.Context, userID, id uint, quantity int) error
	// Delete は行 id を削除します。
	Delete(ctx context.Context, userID, id uint) error
	// Checkout は1トランザクションで行ごとに注文を作成し、カートを空にします。
	// カートが空なら ErrCartEmpty を返します。
	Checkout(ctx context.Context, userID uint) ([]entity.Order, error)
}

// Catalog はカートが必要とする商品の問い合わせを定義します。
type Catalog interface {
	hydrate.ProductFetcher
	ProductExists(ctx context.Context, id uint) (bool, error)
}

// CartUsecase はショッピングカートを管理します。
type CartUsecase struct {
	cart    CartRepository
	catalog Catalog
}

// NewCartUsecase はCartUsecaseの新しいインスタンスを生成します。
func NewCartUsecase(cart CartRepository, catalog Catalog) *CartUsecase {
	return &CartUsecase{cart: cart, catalog: catalog}
}

// List はカートの行を商品と一緒に返します。
func (u *CartUsecase) List(ctx context.Context, userID uint) ([]entity.CartLine, error) {
	items, err := u.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return hydrate.Cart(ctx, items, u.catalog)
}

// Add はカタログの商品をカートに入れます。
func (u *CartUsecase) Add(ctx context.Context, userID, productID uint, quantity int) (*entity.CartItem, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	ok, err := u.catalog.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return u.cart.Add(ctx, userID, productID, quantity)
}

// Update は行の数量を設定します。0なら行を削除します。
func (u *CartUsecase) Update(ctx context.Context, userID, id uint, quantity int) error {
	switch {
	case quantity == 0:
		return u.cart.Delete(ctx, userID, id)
	case quantity < 0 || quantity > MaxQuantity:
		return ErrInvalidQuantity
	}
	return u.cart.SetQuantity(ctx, userID, id, quantity)
}

// Remove はカートから行を削除します。
func (u *CartUsecase) Remove(ctx context.Context, userID, id uint) error {
	return u.cart.Delete(ctx, userID, id)
}

// Checkout はカートの中身をすべて注文し、新しい注文を商品と一緒に返します。
func (u *CartUsecase) Checkout(ctx context.Context, userID uint) ([]entity.OrderWithProduct, error) {
	orders, err := u.cart.Checkout(ctx, userID)
	if err != nil {
		return nil, err
	}
	slog.Info("checkout completed", "user_id", userID, "orders", len(orders))
	return hydrate.Orders(ctx, orders, u.catalog)
}
