// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/feature/auth/domain/entity"
	"storefront/internal/feature/auth/transport/http/dto"
	"storefront/internal/feature/auth/usecase"
	"storefront/internal/platform/apperr"
	jwtmw "storefront/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID uint) (*entity.User, string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup は POST /api/auth/signup を処理します。
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, apperr.Validation("Name, email and password are required"))
		return
	}
	token, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrWeakPassword):
			api.Fail(c, apperr.Validation("Password is not strong enough"))
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			api.Fail(c, apperr.Validation("User already exists"))
		default:
			api.Fail(c, apperr.Internal("Signup failed", err))
		}
		return
	}
	slog.Info("user signup successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Success: true, Status: "success", Token: token})
}

// Login は POST /api/auth/login を処理します。
// 未登録とパスワード不一致はどちらも401ですが、メッセージは区別されます。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, apperr.Validation("Email and password are required"))
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			api.Fail(c, apperr.Unauthenticated("User does not exist"))
		case errors.Is(err, usecase.ErrInvalidPassword):
			api.Fail(c, apperr.Unauthenticated("Invalid password"))
		default:
			api.Fail(c, apperr.Internal("Login failed", err))
		}
		return
	}
	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Success: true, Status: "success", Token: token})
}

// Profile は GET /api/profile を処理し、呼び出し元のトークンを再発行します。
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
		return
	}
	user, token, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			api.Fail(c, apperr.NotFound("User record not found"))
			return
		}
		api.Fail(c, apperr.Internal("Unable to fetch user profile", err))
		return
	}
	api.OK(c, gin.H{"user": user, "token": token})
}
