// Package dto はprofileフィーチャーのリクエストボディを定義します。
package dto

// UpdateUserReq は PUT /api/user/update のリクエストボディを表します。1項目以上が必要です。
type UpdateUserReq struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}
