// Package entity は注文とカートのドメインエンティティを定義します。
package entity

import (
	"time"

	catalog "storefront/internal/feature/catalog/domain/entity"
)

// StatusPlaced はチェックアウトで作成された注文のステータスです。
const StatusPlaced = "placed"

// Order は購入した商品1行分です。作成後に変更されることはありません。
type Order struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"not null;index"`

	// ProductID はカタログストアの商品を参照する。
	// 参照が失われた場合は nil
	ProductID *uint     `json:"productId" gorm:"index"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	Status    string    `json:"status" gorm:"size:32;not null;default:placed"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderWithProduct は注文に商品サマリーを結合したものです。
// 商品が既に存在しない場合、Product は nil です。
type OrderWithProduct struct {
	Order
	Product *catalog.ProductSummary `json:"product"`
}

// CartItem はユーザーが購入予定の商品です。
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uint      `json:"productId" gorm:"not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine はカートの行に商品サマリーを結合したものです。
type CartLine struct {
	CartItem
	Product *catalog.ProductSummary `json:"product"`
}
