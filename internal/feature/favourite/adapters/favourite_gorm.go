// Package adapters はfavouriteフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/feature/favourite/domain/entity"
	"storefront/internal/feature/favourite/usecase"
	"storefront/internal/platform/db"
)

type favouriteGorm struct {
	db *gorm.DB
}

var _ usecase.FavouriteRepository = (*favouriteGorm)(nil)

// NewFavouriteRepository はgorm.DBを使うお気に入りリポジトリを生成します。
func NewFavouriteRepository(db *gorm.DB) *favouriteGorm {
	return &favouriteGorm{db: db}
}

func (r *favouriteGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Favourite, error) {
	var out []entity.Favourite
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *favouriteGorm) Add(ctx context.Context, userID, productID uint) (*entity.Favourite, error) {
	fav, err := r.find(ctx, userID, productID)
	if err == nil {
		return fav, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fav = &entity.Favourite{UserID: userID, ProductID: &productID}
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		// 同時に追加した側が先に登録したので、その行を返す
		if db.IsDuplicateKey(err) {
			return r.find(ctx, userID, productID)
		}
		return nil, err
	}
	return fav, nil
}

func (r *favouriteGorm) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Favourite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrFavouriteNotFound
	}
	return nil
}

func (r *favouriteGorm) find(ctx context.Context, userID, productID uint) (*entity.Favourite, error) {
	var fav entity.Favourite
	err := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}
