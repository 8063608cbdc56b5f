// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	user "storefront/internal/feature/auth/domain/entity"
	authusecase "storefront/internal/feature/auth/usecase"
	"storefront/internal/feature/profile/domain/entity"
	"storefront/internal/feature/profile/transport/http/dto"
	"storefront/internal/feature/profile/usecase"
	"storefront/internal/platform/apperr"
	jwtmw "storefront/internal/platform/jwt"
)

// ProfileUsecase はプロフィール操作のユースケースを定義します。
type ProfileUsecase interface {
	Me(ctx context.Context, userID uint) (*entity.Me, error)
	UpdateUser(ctx context.Context, userID uint, name, email *string) (*user.User, error)
}

type ProfileHandler struct {
	profiles ProfileUsecase
}

func NewProfileHandler(profiles ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me は GET /api/me を処理します。
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
		return
	}
	me, err := h.profiles.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			api.Fail(c, apperr.NotFound("User record not found"))
			return
		}
		api.Fail(c, apperr.Internal("Unable to fetch user profile", err))
		return
	}
	api.OK(c, gin.H{"user": me})
}

// UpdateUser は PUT /api/user/update を処理します。
func (h *ProfileHandler) UpdateUser(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Invalid name or email"))
		return
	}
	usr, err := h.profiles.UpdateUser(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNothingToUpdate):
			api.Fail(c, apperr.Validation("Nothing to update"))
		case errors.Is(err, authusecase.ErrEmailAlreadyExists):
			api.Fail(c, apperr.Validation("Email already in use"))
		case errors.Is(err, authusecase.ErrUserNotFound):
			api.Fail(c, apperr.NotFound("User record not found"))
		default:
			api.Fail(c, apperr.Internal("Unable to update user", err))
		}
		return
	}
	slog.Info("user updated", "user_id", userID)
	api.OK(c, gin.H{"message": "User updated successfully", "user": usr})
}
