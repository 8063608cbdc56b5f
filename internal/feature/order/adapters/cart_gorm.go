package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/feature/order/domain/entity"
	"storefront/internal/feature/order/usecase"
	"storefront/internal/platform/db"
)

type cartGorm struct {
	db *gorm.DB
}

var _ usecase.CartRepository = (*cartGorm)(nil)

// NewCartRepository はgorm.DBを使うカートリポジトリを生成します。
func NewCartRepository(db *gorm.DB) *cartGorm {
	return &cartGorm{db: db}
}

func (r *cartGorm) ListByUser(ctx context.Context, userID uint) ([]entity.CartItem, error) {
	var out []entity.CartItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Add は既存の行があれば数量を加算し、なければ作成します。
// 合計が MaxQuantity を超える場合は ErrInvalidQuantity を返します。
func (r *cartGorm) Add(ctx context.Context, userID, productID uint, quantity int) (*entity.CartItem, error) {
	item, err := r.add(ctx, userID, productID, quantity)
	if db.IsDuplicateKey(err) {
		// 同じ商品の初回追加が競合した場合、勝った側の行に加算する
		item, err = r.add(ctx, userID, productID, quantity)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *cartGorm) add(ctx context.Context, userID, productID uint, quantity int) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := db.ForUpdate(tx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > usecase.MaxQuantity {
				return usecase.ErrInvalidQuantity
			}
			item = entity.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}
		if item.Quantity+quantity > usecase.MaxQuantity {
			return usecase.ErrInvalidQuantity
		}
		item.Quantity += quantity
		return tx.Model(&item).Update("quantity", item.Quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartGorm) SetQuantity(ctx context.Context, userID, id uint, quantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.CartItem
		err := db.ForUpdate(tx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrCartItemNotFound
		}
		if err != nil {
			return err
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
}

func (r *cartGorm) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCartItemNotFound
	}
	return nil
}

func (r *cartGorm) Checkout(ctx context.Context, userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []entity.CartItem
		if err := db.ForUpdate(tx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return usecase.ErrCartEmpty
		}

		orders = make([]entity.Order, 0, len(items))
		for _, it := range items {
			pid := it.ProductID
			orders = append(orders, entity.Order{
				UserID:    userID,
				ProductID: &pid,
				Quantity:  it.Quantity,
				Status:    entity.StatusPlaced,
			})
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
