// Package adapters はorderフィーチャー(注文とカート)のリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/feature/order/domain/entity"
	"storefront/internal/feature/order/usecase"
)

type orderGorm struct {
	db *gorm.DB
}

var _ usecase.OrderRepository = (*orderGorm)(nil)

// NewOrderRepository はgorm.DBを使う注文リポジトリを生成します。
func NewOrderRepository(db *gorm.DB) *orderGorm {
	return &orderGorm{db: db}
}

func (r *orderGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
