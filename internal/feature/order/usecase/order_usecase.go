package usecase

import (
	"context"

	"storefront/internal/feature/catalog/hydrate"
	"storefront/internal/feature/order/domain/entity"
)

// OrderRepository は注文履歴の読み取りを抽象化します。
type OrderRepository interface {
	// ListByUser はユーザーの注文を新しい順に返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Order, error)
}

// OrderUsecase は注文履歴を提供します。
type OrderUsecase struct {
	orders   OrderRepository
	products hydrate.ProductFetcher
}

// NewOrderUsecase はOrderUsecaseの新しいインスタンスを生成します。
func NewOrderUsecase(orders OrderRepository, products hydrate.ProductFetcher) *OrderUsecase {
	return &OrderUsecase{orders: orders, products: products}
}

// ListOrders はユーザーの注文を新しい順に、商品と一緒に返します。
func (u *OrderUsecase) ListOrders(ctx context.Context, userID uint) ([]entity.OrderWithProduct, error) {
	orders, err := u.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return hydrate.Orders(ctx, orders, u.products)
}
