// Package entity はプロフィール画面の集約ビューを定義します。
package entity

import (
	address "storefront/internal/feature/address/domain/entity"
	favourite "storefront/internal/feature/favourite/domain/entity"
	order "storefront/internal/feature/order/domain/entity"
)

// Me はアカウント画面に表示する呼び出し元の情報一式です。
type Me struct {
	ID         uint                             `json:"id"`
	Name       string                           `json:"name"`
	Email      string                           `json:"email"`
	Addresses  []address.Address                `json:"addresses"`
	Favourites []favourite.FavouriteWithProduct `json:"favourites"`
	Orders     []order.OrderWithProduct         `json:"orders"`
}
