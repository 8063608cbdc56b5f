// Package dto はfavouriteフィーチャーのリクエストボディを定義します。
package dto

// AddFavouriteReq は POST /api/favourites/add のリクエストボディを表します。
type AddFavouriteReq struct {
	ProductID uint `json:"productId" binding:"required"`
}

// RemoveFavouriteReq は DELETE /api/favourites/remove のリクエストボディを表します。
type RemoveFavouriteReq struct {
	ID uint `json:"id" binding:"required"`
}
