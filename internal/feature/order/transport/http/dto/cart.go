// Package dto はカートエンドポイントのリクエストボディを定義します。
package dto

// AddCartItemReq は POST /api/cart/add のリクエストボディを表します。数量の既定値は1です。
type AddCartItemReq struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  *int `json:"quantity"`
}

// Qty は指定された数量を返します。省略時は1です。
func (r AddCartItemReq) Qty() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// UpdateCartItemReq は PUT /api/cart/update のリクエストボディを表します。数量0は行を削除します。
type UpdateCartItemReq struct {
	ID       uint `json:"id" binding:"required"`
	Quantity *int `json:"quantity" binding:"required"`
}

// RemoveCartItemReq は DELETE /api/cart/remove のリクエストボディを表します。
type RemoveCartItemReq struct {
	ID uint `json:"id" binding:"required"`
}
