// Package adapters はaddressフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/feature/address/domain/entity"
	"storefront/internal/feature/address/usecase"
	user "storefront/internal/feature/auth/domain/entity"
	"storefront/internal/platform/db"
)

type addressGorm struct {
	db *gorm.DB
}

var _ usecase.AddressRepository = (*addressGorm)(nil)

// NewAddressRepository はgorm.DBを使う住所リポジトリを生成します。
func NewAddressRepository(db *gorm.DB) *addressGorm {
	return &addressGorm{db: db}
}

func (r *addressGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Address, error) {
	var out []entity.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC").Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addressGorm) Create(ctx context.Context, a *entity.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, a.UserID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&entity.Address{}).Where("user_id = ?", a.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			a.IsPrimary = true
		}
		if a.IsPrimary && count > 0 {
			if err := clearPrimary(tx, a.UserID); err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

func (r *addressGorm) Update(ctx context.Context, userID, id uint, patch entity.AddressPatch) (*entity.Address, error) {
	var out *entity.Address
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, userID); err != nil {
			return err
		}
		a, err := findOwned(tx, userID, id)
		if err != nil {
			return err
		}
		wasPrimary := a.IsPrimary
		patch.Apply(a)
		// primary は外せない。別の住所を primary にすることでのみ入れ替わる
		if wasPrimary {
			a.IsPrimary = true
		}
		if a.IsPrimary && !wasPrimary {
			if err := clearPrimary(tx, userID); err != nil {
				return err
			}
		}
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetDefault は所有者を確認し、ユーザーの primary をすべて外してから対象を primary にします。
func (r *addressGorm) SetDefault(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, userID); err != nil {
			return err
		}
		if _, err := findOwned(tx, userID, id); err != nil {
			return err
		}
		if err := clearPrimary(tx, userID); err != nil {
			return err
		}
		return tx.Model(&entity.Address{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_primary", true).Error
	})
}

func (r *addressGorm) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, userID); err != nil {
			return err
		}
		a, err := findOwned(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&entity.Address{}, a.ID).Error; err != nil {
			return err
		}
		if !a.IsPrimary {
			return nil
		}

		var next entity.Address
		err = tx.Where("user_id = ?", userID).Order("id ASC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&next).Update("is_primary", true).Error
	})
}

// lockOwner はユーザー行をロックし、同一ユーザーの primary 変更を直列化します。
// 住所が1件もない場合でもロック対象が存在するため、初回追加同士の競合も防げます。
func lockOwner(tx *gorm.DB, userID uint) error {
	var ids []uint
	return db.ForUpdate(tx).Model(&user.User{}).Where("id = ?", userID).Pluck("id", &ids).Error
}

// findOwned は住所を取得し、対応する方言では行をロックします。
// 他人の住所は存在しないものとして扱います。
func findOwned(tx *gorm.DB, userID, id uint) (*entity.Address, error) {
	var a entity.Address
	err := db.ForUpdate(tx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func clearPrimary(tx *gorm.DB, userID uint) error {
	return tx.Model(&entity.Address{}).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Update("is_primary", false).Error
}
