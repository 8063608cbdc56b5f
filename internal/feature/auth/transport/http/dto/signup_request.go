package dto

// SignupReq は /signup エンドポイントのリクエストボディを表します。
// パスワード強度は usecase で検証し、クライアントには1つのメッセージで返します。
type SignupReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
