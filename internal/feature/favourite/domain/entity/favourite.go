// Package entity はfavouriteフィーチャーのドメインエンティティを定義します。
package entity

import (
	"time"

	catalog "storefront/internal/feature/catalog/domain/entity"
)

// Favourite はユーザーがお気に入りにした商品を表します。
// 数量は持たず、行が存在することだけが状態です。
type Favourite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_favourite_user_product,priority:1"`
	ProductID *uint     `json:"productId" gorm:"uniqueIndex:idx_favourite_user_product,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Favourite) TableName() string {
	return "favourites"
}

// FavouriteWithProduct はお気に入りに商品サマリーを結合したものです。
// 商品が既に存在しない場合、Product は nil です。
type FavouriteWithProduct struct {
	Favourite
	Product *catalog.ProductSummary `json:"product"`
}
