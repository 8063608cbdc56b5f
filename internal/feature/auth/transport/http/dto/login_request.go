// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRes はログインとサインアップのレスポンスを表します。
type TokenRes struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Token   string `json:"token"`
}
